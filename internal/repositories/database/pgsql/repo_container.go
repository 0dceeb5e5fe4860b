package pgsql

import (
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CorrespondenceRepo: newPgxCorrespondenceRepository(dbPool),
		MinuteRepo:         newPgxMinuteRepository(dbPool),
		DelegationRepo:     newPgxDelegationRepository(dbPool),
		OrganizationRepo:   newPgxOrganizationRepository(dbPool),
		UserRepo:           newPgxUserRepository(dbPool),
	}
}
