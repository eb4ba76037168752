package usecase

import "time"

// Clock hooks for tests that need a pinned "today".

func (uc *LedgerUseCase) SetClock(now func() time.Time) { uc.now = now }

func (uc *AccountUseCase) SetClock(now func() time.Time) { uc.now = now }
