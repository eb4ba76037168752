package domain

// EventTypeReloadAll is the event type published on the reload bus after
// balance-affecting commits.
const EventTypeReloadAll = "ledger.reload_all"

// ReloadEvent is the coarse invalidation signal consumed by dependent views
// (operation lists, history charts, balance displays). Fire-and-forget.
type ReloadEvent struct {
	Type      string `json:"type"`
	AccountID string `json:"account_id,omitempty"`
}
