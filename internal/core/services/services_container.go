package services

import (
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. A nil parser disables natural language expense
// capture in chat.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, parser portssvc.ExpenseParser) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Group = NewGroupService(repos.GroupRepo, repos.UserRepo)
	container.Ledger = NewLedgerService(repos.ExpenseRepo, repos.GroupRepo)
	container.Balance = NewBalanceService(repos.GroupRepo, repos.ExpenseRepo, repos.UserRepo)
	container.Settlement = NewSettlementService(container.Balance, container.Ledger, cfg.SettlementPolicy)
	container.Chat = NewChatService(repos.ChatRepo, repos.GroupRepo, repos.UserRepo, container.Ledger, parser)

	return container
}
