package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/middleware"
)

// ledgerService records expenses against groups. An expense and its splits
// are written in a single transaction; a failed write leaves no trace.
type ledgerService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	groupRepo   portsrepo.GroupRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(expenseRepo portsrepo.ExpenseRepositoryFacade, groupRepo portsrepo.GroupRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{expenseRepo: expenseRepo, groupRepo: groupRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordExpense(ctx context.Context, groupID string, paidBy string, amount domain.Money, description string, kind domain.ExpenseKind, plan domain.SplitPlan, sourceText *string, creatorUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group for expense: %w", err)
	}
	if !group.HasMember(creatorUserID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, creatorUserID, groupID)
	}
	if !group.HasMember(paidBy) {
		return nil, fmt.Errorf("%w: payer %s is not a member of group %s", domain.ErrUnknownMember, paidBy, groupID)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive, got %s", domain.ErrInvalidAmount, amount)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: expense description is required", apperrors.ErrValidation)
	}

	shares, err := plan.Resolve(amount, group.MemberSet())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		GroupID:     groupID,
		PaidBy:      paidBy,
		Amount:      amount,
		Description: description,
		Kind:        kind,
		SourceText:  sourceText,
		CreatedAt:   now,
		CreatedBy:   creatorUserID,
		Splits:      make([]domain.Split, len(shares)),
	}
	for i, share := range shares {
		expense.Splits[i] = domain.Split{
			ExpenseID: expense.ExpenseID,
			UserID:    share.UserID,
			Amount:    share.Amount,
		}
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("group_id", groupID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerWriteFailed, err)
	}

	logger.Info("Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("group_id", groupID),
		slog.String("kind", string(kind)),
		slog.String("amount", amount.String()),
	)
	return &expense, nil
}

func (s *ledgerService) GetExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerReadFailed, err)
	}

	group, err := s.groupRepo.FindGroupByID(ctx, expense.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group for expense: %w", err)
	}
	if !group.HasMember(requestingUserID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, requestingUserID, expense.GroupID)
	}
	return expense, nil
}

func (s *ledgerService) ListGroupExpenses(ctx context.Context, groupID string, requestingUserID string) ([]domain.Expense, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if !group.HasMember(requestingUserID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, requestingUserID, groupID)
	}

	expenses, err := s.expenseRepo.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerReadFailed, err)
	}
	return expenses, nil
}
