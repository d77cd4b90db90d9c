package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
)

type PgxChatRepository struct {
	BaseRepository
}

// newPgxChatRepository creates a new repository for chat message data.
func newPgxChatRepository(pool *pgxpool.Pool) portsrepo.ChatRepositoryFacade {
	return &PgxChatRepository{BaseRepository{Pool: pool}}
}

func (r *PgxChatRepository) SaveMessage(ctx context.Context, message domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (message_id, group_id, user_id, body, kind, expense_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		message.MessageID,
		message.GroupID,
		message.UserID,
		message.Body,
		message.Kind,
		message.ExpenseID,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message %s: %w", message.MessageID, err)
	}
	return nil
}

func (r *PgxChatRepository) ListMessagesByGroup(ctx context.Context, groupID string, limit int) ([]domain.ChatMessage, error) {
	query := `
		SELECT message_id, group_id, user_id, body, kind, expense_id, created_at
		FROM chat_messages
		WHERE group_id = $1
		ORDER BY created_at, message_id
	`
	args := []any{groupID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages for group %s: %w", groupID, err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var message domain.ChatMessage
		if err := rows.Scan(
			&message.MessageID,
			&message.GroupID,
			&message.UserID,
			&message.Body,
			&message.Kind,
			&message.ExpenseID,
			&message.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row for group %s: %w", groupID, err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows for group %s: %w", groupID, err)
	}
	return messages, nil
}
