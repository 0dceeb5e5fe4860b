package services

import (
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization first since routing and archive evaluation depend on it
	container.Organization = NewOrganizationService(repos.OrganizationRepo)

	container.Correspondence = NewCorrespondenceService(
		repos.CorrespondenceRepo,
		WithUserReader(repos.UserRepo),
		WithOrganizationService(container.Organization),
	)

	container.Routing = NewRoutingService(
		repos.CorrespondenceRepo,
		WithRoutingUserReader(repos.UserRepo),
		WithRoutingOrganizationService(container.Organization),
		WithSnapshotRefresher(container.Correspondence),
	)

	container.Minute = NewMinuteService(
		repos.MinuteRepo,
		repos.CorrespondenceRepo,
		repos.DelegationRepo,
		repos.UserRepo,
	)

	container.Delegation = NewDelegationService(
		repos.DelegationRepo,
		repos.CorrespondenceRepo,
		repos.UserRepo,
	)

	container.Archive = NewArchiveService(container.Correspondence, container.Organization)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)

	return container
}
