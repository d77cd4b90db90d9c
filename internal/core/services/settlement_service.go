package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/middleware"
	"github.com/spendly/spendly_backend/internal/platform/config"
)

// settlementService validates and records debtor-to-creditor payments and
// proposes transfer plans that zero out a group's balances.
type settlementService struct {
	balanceSvc portssvc.BalanceSvcFacade
	ledgerSvc  portssvc.LedgerSvcFacade
	policy     config.SettlementPolicy
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(balanceSvc portssvc.BalanceSvcFacade, ledgerSvc portssvc.LedgerSvcFacade, policy config.SettlementPolicy) portssvc.SettlementSvcFacade {
	return &settlementService{balanceSvc: balanceSvc, ledgerSvc: ledgerSvc, policy: policy}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) ProposeSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Transfer, error) {
	breakdown, err := s.balanceSvc.GetGroupBreakdown(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return domain.SimplifyDebts(breakdown.Balances), nil
}

func (s *settlementService) RecordSettlement(ctx context.Context, groupID string, debtorID string, creditorID string, amount domain.Money, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: settlement amount must be positive, got %s", domain.ErrInvalidAmount, amount)
	}
	if debtorID == creditorID {
		return nil, fmt.Errorf("%w: debtor and creditor must differ", apperrors.ErrValidation)
	}

	breakdown, err := s.balanceSvc.GetGroupBreakdown(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAgainstBalances(ctx, breakdown.Balances, debtorID, amount); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Settlement: %s paid %s", debtorID, creditorID)
	expense, err := s.ledgerSvc.RecordExpense(ctx, groupID, debtorID, amount, description, domain.KindSettlement, domain.LendPlan(creditorID), nil, requestingUserID)
	if err != nil {
		return nil, err
	}

	logger.Info("Settlement recorded",
		slog.String("group_id", groupID),
		slog.String("debtor_id", debtorID),
		slog.String("creditor_id", creditorID),
		slog.String("amount", amount.String()),
	)
	return expense, nil
}

// checkAgainstBalances verifies the transfer against the debtor's current
// net position. Under the strict policy an overshoot is rejected; under the
// advisory policy it is recorded with a warning.
func (s *settlementService) checkAgainstBalances(ctx context.Context, balances []domain.Balance, debtorID string, amount domain.Money) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var debtorNet domain.Money
	found := false
	for _, b := range balances {
		if b.UserID == debtorID {
			debtorNet = b.Net
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s has no balance in this group", domain.ErrUnknownMember, debtorID)
	}

	var problem string
	switch {
	case !debtorNet.IsNegative():
		problem = fmt.Sprintf("%s owes nothing (net %s)", debtorID, debtorNet)
	case amount > debtorNet.Neg():
		problem = fmt.Sprintf("payment of %s exceeds outstanding debt of %s", amount, debtorNet.Neg())
	default:
		return nil
	}

	if s.policy == config.SettlementAdvisory {
		logger.Warn("Settlement overshoots debtor balance", slog.String("debtor_id", debtorID), slog.String("detail", problem))
		return nil
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, problem)
}
