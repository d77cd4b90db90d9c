package dto

import (
	"time"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// PostMessageRequest defines the data required to post a chat message.
type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ChatMessageResponse defines the data returned for a chat message.
type ChatMessageResponse struct {
	MessageID string    `json:"messageID"`
	GroupID   string    `json:"groupID"`
	UserID    string    `json:"userID"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	ExpenseID *string   `json:"expenseID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListMessagesResponse wraps a group's chat history.
type ListMessagesResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// ToChatMessageResponse converts a domain.ChatMessage to its DTO.
func ToChatMessageResponse(m *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		MessageID: m.MessageID,
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		Body:      m.Body,
		Kind:      string(m.Kind),
		ExpenseID: m.ExpenseID,
		CreatedAt: m.CreatedAt,
	}
}

// ToListMessagesResponse converts a slice of domain.ChatMessage to its DTO.
func ToListMessagesResponse(messages []domain.ChatMessage) ListMessagesResponse {
	responses := make([]ChatMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToChatMessageResponse(&m)
	}
	return ListMessagesResponse{Messages: responses}
}
