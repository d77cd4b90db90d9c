package services

import (
	"context"
	"fmt"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
)

// balanceService derives per-member paid, owed and net totals from the
// recorded expenses of a group. Balances are never stored; they are
// recomputed from the ledger on every request.
type balanceService struct {
	groupRepo   portsrepo.GroupRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(groupRepo portsrepo.GroupRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{groupRepo: groupRepo, expenseRepo: expenseRepo, userRepo: userRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) GetGroupBreakdown(ctx context.Context, groupID string, requestingUserID string) (*domain.GroupBreakdown, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if !group.HasMember(requestingUserID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, requestingUserID, groupID)
	}
	return s.breakdownForGroup(ctx, group)
}

func (s *balanceService) GetUserBreakdowns(ctx context.Context, userID string) ([]domain.GroupBreakdown, error) {
	groups, err := s.groupRepo.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	breakdowns := make([]domain.GroupBreakdown, 0, len(groups))
	for i := range groups {
		breakdown, err := s.breakdownForGroup(ctx, &groups[i])
		if err != nil {
			return nil, err
		}
		breakdowns = append(breakdowns, *breakdown)
	}
	return breakdowns, nil
}

func (s *balanceService) breakdownForGroup(ctx context.Context, group *domain.Group) (*domain.GroupBreakdown, error) {
	expenses, err := s.expenseRepo.ListExpensesByGroup(ctx, group.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for group %s: %w", group.GroupID, err)
	}

	balances := domain.ComputeBalances(group.MemberIDs, expenses)

	users, err := s.userRepo.FindUsersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load member names: %w", err)
	}
	for i := range balances {
		if user, ok := users[balances[i].UserID]; ok {
			balances[i].UserName = user.Name
		}
	}

	// Settlements move money between members but are not spending, so the
	// group total only counts regular expenses.
	var total domain.Money
	for _, e := range expenses {
		if e.Kind == domain.KindRegular {
			total = total.Add(e.Amount)
		}
	}

	return &domain.GroupBreakdown{
		GroupID:       group.GroupID,
		GroupName:     group.Name,
		TotalExpenses: total,
		Balances:      balances,
	}, nil
}
