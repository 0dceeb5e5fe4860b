package services

import (
	"context"

	"github.com/npadigital/correspondence_app/internal/core/domain"
	"github.com/npadigital/correspondence_app/internal/dto"
)

// CorrespondenceReaderSvc defines read operations over the correspondence store.
// Reads are served from the in-memory snapshot where possible.
type CorrespondenceReaderSvc interface {
	// GetCorrespondenceByID retrieves a single item.
	GetCorrespondenceByID(ctx context.Context, correspondenceID string) (*domain.Correspondence, error)

	// ListCorrespondence retrieves items matching the filter, newest first.
	ListCorrespondence(ctx context.Context, filter domain.CorrespondenceFilter) ([]domain.Correspondence, error)
}

// CorrespondenceWriterSvc defines write operations over the correspondence store.
type CorrespondenceWriterSvc interface {
	// CreateCorrespondence registers a new item, generating its reference
	// number and defaulting its current office to the owning office.
	CreateCorrespondence(ctx context.Context, req dto.CreateCorrespondenceRequest, creatorUserID string) (*domain.Correspondence, error)

	// PatchCorrespondence applies a whitelisted partial update.
	PatchCorrespondence(ctx context.Context, correspondenceID string, patch dto.CorrespondencePatch, updaterUserID string) (*domain.Correspondence, error)

	// AddDistribution appends a distribution list entry to an item.
	AddDistribution(ctx context.Context, correspondenceID string, req dto.AddDistributionRequest, creatorUserID string) (*domain.Correspondence, error)
}

// CorrespondenceSnapshotSvc controls the in-memory snapshot held by the service.
type CorrespondenceSnapshotSvc interface {
	// RefreshSnapshot reloads the full snapshot from the store. A refresh
	// cancelled via ctx leaves the previous snapshot in place.
	RefreshSnapshot(ctx context.Context) error
}

// CorrespondenceSvcFacade combines all correspondence service interfaces
type CorrespondenceSvcFacade interface {
	CorrespondenceReaderSvc
	CorrespondenceWriterSvc
	CorrespondenceSnapshotSvc
}
