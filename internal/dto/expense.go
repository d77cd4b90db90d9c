package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendly/spendly_backend/internal/core/domain"
)

// RatioShareRequest is one member's ratio in a RATIO split plan.
type RatioShareRequest struct {
	UserID      string `json:"userID" binding:"required"`
	Numerator   int64  `json:"numerator" binding:"required,gt=0"`
	Denominator int64  `json:"denominator" binding:"required,gt=0"`
}

// PercentageShareRequest is one member's percentage in a PERCENTAGE split plan.
type PercentageShareRequest struct {
	UserID  string `json:"userID" binding:"required"`
	Percent int64  `json:"percent" binding:"required,gt=0,lte=100"`
}

// ExactShareRequest is one member's fixed amount in an EXACT split plan.
type ExactShareRequest struct {
	UserID string          `json:"userID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SplitPlanRequest is the tagged-variant wire form of a split plan. Method
// selects which of the remaining fields is consulted.
type SplitPlanRequest struct {
	Method      string                   `json:"method" binding:"required,oneof=EQUAL RATIO PERCENTAGE EXACT LEND"`
	Members     []string                 `json:"members,omitempty"`
	Ratios      []RatioShareRequest      `json:"ratios,omitempty"`
	Percentages []PercentageShareRequest `json:"percentages,omitempty"`
	Exacts      []ExactShareRequest      `json:"exacts,omitempty"`
	LendTo      string                   `json:"lendTo,omitempty"`
}

// CreateExpenseRequest defines the data required to record an expense.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal  `json:"amount" binding:"required,positivemoney"`
	Description string           `json:"description" binding:"required"`
	PaidBy      string           `json:"paidBy"`
	Plan        SplitPlanRequest `json:"plan" binding:"required"`
}

// SplitResponse defines the data returned for a single split.
type SplitResponse struct {
	UserID string          `json:"userID"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseResponse defines the data returned for an expense with its splits.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	GroupID     string          `json:"groupID"`
	PaidBy      string          `json:"paidBy"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	SourceText  *string         `json:"sourceText,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
	Splits      []SplitResponse `json:"splits"`
}

// ListExpensesResponse wraps the expenses of a group.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToDomainPlan converts the wire plan into a domain.SplitPlan. Amounts are
// converted to minor units; fractional minor units are rejected here so the
// resolver only ever sees representable money.
func (r SplitPlanRequest) ToDomainPlan() (domain.SplitPlan, error) {
	plan := domain.SplitPlan{Method: domain.SplitMethod(r.Method)}
	switch plan.Method {
	case domain.SplitEqual:
		plan.Members = r.Members
	case domain.SplitRatio:
		plan.Ratios = make([]domain.RatioEntry, len(r.Ratios))
		for i, e := range r.Ratios {
			plan.Ratios[i] = domain.RatioEntry{UserID: e.UserID, Num: e.Numerator, Den: e.Denominator}
		}
	case domain.SplitPercentage:
		plan.Percentages = make([]domain.PercentageEntry, len(r.Percentages))
		for i, e := range r.Percentages {
			plan.Percentages[i] = domain.PercentageEntry{UserID: e.UserID, Percent: e.Percent}
		}
	case domain.SplitExact:
		plan.Exacts = make([]domain.ExactEntry, len(r.Exacts))
		for i, e := range r.Exacts {
			amount, err := domain.MoneyFromDecimal(e.Amount)
			if err != nil {
				return domain.SplitPlan{}, fmt.Errorf("exact share for %s: %w", e.UserID, err)
			}
			plan.Exacts[i] = domain.ExactEntry{UserID: e.UserID, Amount: amount}
		}
	case domain.SplitLend:
		plan.LendTo = r.LendTo
	}
	return plan, nil
}

// ToSplitResponse converts a domain.Split to SplitResponse DTO.
func ToSplitResponse(s *domain.Split) SplitResponse {
	return SplitResponse{
		UserID: s.UserID,
		Amount: s.Amount.Decimal(),
	}
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	splits := make([]SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = ToSplitResponse(&s)
	}
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Amount:      e.Amount.Decimal(),
		Description: e.Description,
		Kind:        string(e.Kind),
		SourceText:  e.SourceText,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
		Splits:      splits,
	}
}

// ToListExpensesResponse converts a slice of domain.Expense to ListExpensesResponse.
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = ToExpenseResponse(&e)
	}
	return ListExpensesResponse{Expenses: responses}
}
