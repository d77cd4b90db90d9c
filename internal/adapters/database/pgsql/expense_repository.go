package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense and split data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: pool}}
}

// SaveExpense saves an expense and its splits within a DB transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	expenseQuery := `
		INSERT INTO expenses (expense_id, group_id, paid_by, amount, description, kind, source_text, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, expenseQuery,
		expense.ExpenseID,
		expense.GroupID,
		expense.PaidBy,
		int64(expense.Amount),
		expense.Description,
		expense.Kind,
		expense.SourceText,
		expense.CreatedAt,
		expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", expense.ExpenseID, err)
	}

	batch := &pgx.Batch{}
	splitQuery := `
		INSERT INTO expense_splits (expense_id, user_id, amount)
		VALUES ($1, $2, $3);
	`
	for _, split := range expense.Splits {
		batch.Queue(splitQuery, split.ExpenseID, split.UserID, int64(split.Amount))
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute split batch for expense %s: %w", expense.ExpenseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT expense_id, group_id, paid_by, amount, description, kind, source_text, created_at, created_by
		FROM expenses
		WHERE expense_id = $1;
	`
	var expense domain.Expense
	var amount int64
	err := r.Pool.QueryRow(ctx, query, expenseID).Scan(
		&expense.ExpenseID,
		&expense.GroupID,
		&expense.PaidBy,
		&amount,
		&expense.Description,
		&expense.Kind,
		&expense.SourceText,
		&expense.CreatedAt,
		&expense.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	expense.Amount = domain.Money(amount)

	splits, err := r.findSplitsByExpenseIDs(ctx, []string{expenseID})
	if err != nil {
		return nil, err
	}
	expense.Splits = splits[expenseID]
	return &expense, nil
}

func (r *PgxExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	query := `
		SELECT expense_id, group_id, paid_by, amount, description, kind, source_text, created_at, created_by
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for group %s: %w", groupID, err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	expenseIDs := []string{}
	for rows.Next() {
		var expense domain.Expense
		var amount int64
		if err := rows.Scan(
			&expense.ExpenseID,
			&expense.GroupID,
			&expense.PaidBy,
			&amount,
			&expense.Description,
			&expense.Kind,
			&expense.SourceText,
			&expense.CreatedAt,
			&expense.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row for group %s: %w", groupID, err)
		}
		expense.Amount = domain.Money(amount)
		expenses = append(expenses, expense)
		expenseIDs = append(expenseIDs, expense.ExpenseID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows for group %s: %w", groupID, err)
	}

	if len(expenseIDs) == 0 {
		return expenses, nil
	}

	splits, err := r.findSplitsByExpenseIDs(ctx, expenseIDs)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].Splits = splits[expenses[i].ExpenseID]
	}
	return expenses, nil
}

// findSplitsByExpenseIDs retrieves splits for multiple expenses, grouped by
// expense ID.
func (r *PgxExpenseRepository) findSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]domain.Split, error) {
	query := `
		SELECT expense_id, user_id, amount
		FROM expense_splits
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, user_id;
	`
	rows, err := r.Pool.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string][]domain.Split, len(expenseIDs))
	for rows.Next() {
		var split domain.Split
		var amount int64
		if err := rows.Scan(&split.ExpenseID, &split.UserID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		split.Amount = domain.Money(amount)
		splits[split.ExpenseID] = append(splits[split.ExpenseID], split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", err)
	}
	return splits, nil
}
