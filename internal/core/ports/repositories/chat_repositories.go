package repositories

import (
	"context"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// ChatReader defines read operations for group chat data
type ChatReader interface {
	// ListMessagesByGroup retrieves messages for a group ordered by creation
	// time ascending, capped at limit when limit > 0.
	ListMessagesByGroup(ctx context.Context, groupID string, limit int) ([]domain.ChatMessage, error)
}

// ChatWriter defines write operations for group chat data
type ChatWriter interface {
	// SaveMessage persists a chat message.
	SaveMessage(ctx context.Context, message domain.ChatMessage) error
}

// ChatRepositoryFacade combines all chat-related repository interfaces
type ChatRepositoryFacade interface {
	ChatReader
	ChatWriter
}
