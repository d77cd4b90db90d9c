package dto

import (
	"github.com/shopspring/decimal"
	"github.com/spendly/spendly_backend/internal/core/domain"
)

// RecordSettlementRequest defines a single debtor-to-creditor payment.
type RecordSettlementRequest struct {
	DebtorID   string          `json:"debtorID" binding:"required"`
	CreditorID string          `json:"creditorID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required,positivemoney"`
}

// TransferResponse defines one proposed settlement transfer.
type TransferResponse struct {
	DebtorID   string          `json:"debtorID"`
	CreditorID string          `json:"creditorID"`
	Amount     decimal.Decimal `json:"amount"`
}

// ProposeSettlementsResponse wraps the proposed transfers for a group.
type ProposeSettlementsResponse struct {
	Transfers []TransferResponse `json:"transfers"`
}

// ToProposeSettlementsResponse converts domain transfers to their DTO form.
func ToProposeSettlementsResponse(transfers []domain.Transfer) ProposeSettlementsResponse {
	responses := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		responses[i] = TransferResponse{
			DebtorID:   t.DebtorID,
			CreditorID: t.CreditorID,
			Amount:     t.Amount.Decimal(),
		}
	}
	return ProposeSettlementsResponse{Transfers: responses}
}
