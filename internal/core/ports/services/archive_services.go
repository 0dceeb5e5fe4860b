package services

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
)

// ArchiveSvcFacade evaluates archive visibility for users.
type ArchiveSvcFacade interface {
	// VisibleArchive returns the archived items the user may see, given
	// their allowed archive levels and position in the hierarchy.
	VisibleArchive(ctx context.Context, user domain.User) ([]domain.Correspondence, error)
}
