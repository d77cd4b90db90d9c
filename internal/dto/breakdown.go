package dto

import (
	"github.com/shopspring/decimal"
	"github.com/spendly/spendly_backend/internal/core/domain"
)

// BalanceResponse defines the per-member totals returned in a breakdown.
type BalanceResponse struct {
	UserID    string          `json:"userID"`
	UserName  string          `json:"userName"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	TotalOwed decimal.Decimal `json:"totalOwed"`
	Net       decimal.Decimal `json:"net"`
}

// GroupBreakdownResponse defines the full balance picture of a group.
type GroupBreakdownResponse struct {
	GroupID       string            `json:"groupID"`
	GroupName     string            `json:"groupName"`
	TotalExpenses decimal.Decimal   `json:"totalExpenses"`
	Balances      []BalanceResponse `json:"balances"`
}

// ListBreakdownsResponse wraps the breakdowns of every group a user is in.
type ListBreakdownsResponse struct {
	Breakdowns []GroupBreakdownResponse `json:"breakdowns"`
}

// ToGroupBreakdownResponse converts a domain.GroupBreakdown to its DTO.
func ToGroupBreakdownResponse(b *domain.GroupBreakdown) GroupBreakdownResponse {
	balances := make([]BalanceResponse, len(b.Balances))
	for i, bal := range b.Balances {
		balances[i] = BalanceResponse{
			UserID:    bal.UserID,
			UserName:  bal.UserName,
			TotalPaid: bal.TotalPaid.Decimal(),
			TotalOwed: bal.TotalOwed.Decimal(),
			Net:       bal.Net.Decimal(),
		}
	}
	return GroupBreakdownResponse{
		GroupID:       b.GroupID,
		GroupName:     b.GroupName,
		TotalExpenses: b.TotalExpenses.Decimal(),
		Balances:      balances,
	}
}
