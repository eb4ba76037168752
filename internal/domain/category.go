package domain

import "time"

// CategoryKind distinguishes navigational folders from selectable entries.
type CategoryKind string

const (
	CategoryFolder CategoryKind = "folder"
	CategoryEntry  CategoryKind = "entry"
)

// CategoryType is the operation side a category classifies.
type CategoryType string

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
)

// Category is a node in the category tree. Folders hold no operations
// directly; Shadow is true only for the synthetic category backing
// adjustment operations, which pickers must exclude.
type Category struct {
	ID        string
	Name      string
	Kind      CategoryKind
	Type      CategoryType
	ParentID  string
	Shadow    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Selectable reports whether the category may be offered in pickers and
// attached to user-created operations.
func (c *Category) Selectable() bool {
	return c.Kind == CategoryEntry && !c.Shadow
}
