package sqlite

import (
	"context"
	"fmt"

	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
)

type chatRepository struct {
	store *Store
}

var _ portsrepo.ChatRepositoryFacade = (*chatRepository)(nil)

func (r *chatRepository) SaveMessage(ctx context.Context, message domain.ChatMessage) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO chat_messages (message_id, group_id, user_id, body, kind, expense_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.GroupID, message.UserID, message.Body,
		string(message.Kind), message.ExpenseID, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

func (r *chatRepository) ListMessagesByGroup(ctx context.Context, groupID string, limit int) ([]domain.ChatMessage, error) {
	query := `SELECT message_id, group_id, user_id, body, kind, expense_id, created_at
		 FROM chat_messages WHERE group_id = ?
		 ORDER BY created_at, message_id`
	args := []any{groupID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var message domain.ChatMessage
		var kind string
		if err := rows.Scan(&message.MessageID, &message.GroupID, &message.UserID,
			&message.Body, &kind, &message.ExpenseID, &message.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		message.Kind = domain.ChatMessageKind(kind)
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}
	return messages, nil
}
