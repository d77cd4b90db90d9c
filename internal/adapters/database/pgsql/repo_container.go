package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL-backed repository.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		GroupRepo:   newPgxGroupRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
		ChatRepo:    newPgxChatRepository(dbPool),
	}
}
