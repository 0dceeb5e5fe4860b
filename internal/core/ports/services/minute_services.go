package services

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
	"github.com/npadigital/correspondence_app/internal/dto"
)

// MinuteSvcFacade defines operations over the append-only minute ledger.
type MinuteSvcFacade interface {
	// AppendMinute records a new ledger entry for an item, assigning the
	// next step number. When the request claims delegated authority the
	// acting user must hold an active delegation on the item.
	AppendMinute(ctx context.Context, req dto.CreateMinuteRequest, actorUserID string) (*domain.Minute, error)

	// ListMinutes retrieves ledger entries matching the filter, ordered by
	// step number.
	ListMinutes(ctx context.Context, filter domain.MinuteFilter) ([]domain.Minute, error)
}
