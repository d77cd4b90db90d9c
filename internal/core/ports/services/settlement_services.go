package services

import (
	"context"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// SettlementSvcFacade defines settlement validation, proposal and recording
type SettlementSvcFacade interface {
	// ProposeSettlements computes a minimal set of transfers that would zero
	// out the group's balances.
	ProposeSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Transfer, error)

	// RecordSettlement records a single debtor-to-creditor payment as a
	// settlement expense. In strict mode a transfer that exceeds the debtor's
	// outstanding debt is rejected.
	RecordSettlement(ctx context.Context, groupID string, debtorID string, creditorID string, amount domain.Money, requestingUserID string) (*domain.Expense, error)
}
