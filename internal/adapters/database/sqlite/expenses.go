package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
)

type expenseRepository struct {
	store *Store
}

var _ portsrepo.ExpenseRepositoryFacade = (*expenseRepository)(nil)

// SaveExpense persists an expense and its splits in one transaction.
func (r *expenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (expense_id, group_id, paid_by, amount, description, kind, source_text, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ExpenseID, expense.GroupID, expense.PaidBy, int64(expense.Amount),
		expense.Description, string(expense.Kind), expense.SourceText,
		expense.CreatedAt, expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount) VALUES (?, ?, ?)",
			split.ExpenseID, split.UserID, int64(split.Amount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *expenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense := &domain.Expense{}
	var amount int64
	var kind string
	err := r.store.db.QueryRowContext(ctx,
		`SELECT expense_id, group_id, paid_by, amount, description, kind, source_text, created_at, created_by
		 FROM expenses WHERE expense_id = ?`,
		expenseID,
	).Scan(&expense.ExpenseID, &expense.GroupID, &expense.PaidBy, &amount,
		&expense.Description, &kind, &expense.SourceText, &expense.CreatedAt, &expense.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = domain.Money(amount)
	expense.Kind = domain.ExpenseKind(kind)

	splits, err := r.findSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits
	return expense, nil
}

func (r *expenseRepository) ListExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT expense_id, group_id, paid_by, amount, description, kind, source_text, created_at, created_by
		 FROM expenses WHERE group_id = ?
		 ORDER BY created_at, expense_id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var expense domain.Expense
		var amount int64
		var kind string
		if err := rows.Scan(&expense.ExpenseID, &expense.GroupID, &expense.PaidBy, &amount,
			&expense.Description, &kind, &expense.SourceText, &expense.CreatedAt, &expense.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = domain.Money(amount)
		expense.Kind = domain.ExpenseKind(kind)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		splits, err := r.findSplits(ctx, expenses[i].ExpenseID)
		if err != nil {
			return nil, err
		}
		expenses[i].Splits = splits
	}
	return expenses, nil
}

func (r *expenseRepository) findSplits(ctx context.Context, expenseID string) ([]domain.Split, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT expense_id, user_id, amount FROM expense_splits WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	var splits []domain.Split
	for rows.Next() {
		var split domain.Split
		var amount int64
		if err := rows.Scan(&split.ExpenseID, &split.UserID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		split.Amount = domain.Money(amount)
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}
