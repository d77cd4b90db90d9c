package services

import (
	"context"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// ExpenseReaderSvc defines read operations for recorded expenses
type ExpenseReaderSvc interface {
	// GetExpense retrieves an expense with its splits, verifying the
	// requesting user is a member of its group.
	GetExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListGroupExpenses retrieves all expenses for a group, splits included.
	ListGroupExpenses(ctx context.Context, groupID string, requestingUserID string) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for recorded expenses
type ExpenseWriterSvc interface {
	// RecordExpense resolves the split plan against the group roster and
	// persists the expense with its splits atomically.
	RecordExpense(ctx context.Context, groupID string, paidBy string, amount domain.Money, description string, kind domain.ExpenseKind, plan domain.SplitPlan, sourceText *string, creatorUserID string) (*domain.Expense, error)
}

// LedgerSvcFacade combines all expense ledger service interfaces
type LedgerSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
