package repositories

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// MinuteReader defines read operations for the minute ledger
type MinuteReader interface {
	// ListMinutes retrieves minutes matching the filter, ordered by step number.
	ListMinutes(ctx context.Context, filter domain.MinuteFilter) ([]domain.Minute, error)

	// MaxStepNumber returns the highest step number recorded for an item,
	// or 0 when the item has no minutes yet.
	MaxStepNumber(ctx context.Context, correspondenceID string) (int, error)
}

// MinuteWriter defines the single write operation the ledger allows.
// There is deliberately no update or delete: the ledger is append-only.
type MinuteWriter interface {
	// SaveMinute persists a new ledger entry.
	SaveMinute(ctx context.Context, minute domain.Minute) error
}

// MinuteRepositoryFacade combines the minute ledger repository interfaces
type MinuteRepositoryFacade interface {
	MinuteReader
	MinuteWriter
}
