package services

import (
	"context"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// ParsedShare is one member's share of an interpreted expense.
type ParsedShare struct {
	MemberName string
	Amount     domain.Money
}

// ParsedExpense is the structured candidate extracted from a natural
// language message. The shares are validated against the total before
// anything is recorded.
type ParsedExpense struct {
	Description string
	Amount      domain.Money
	PayerName   string
	Shares      []ParsedShare
}

// ExpenseParser extracts a candidate expense from free-form text.
// Implementations return (nil, nil) when the text does not describe an
// expense.
type ExpenseParser interface {
	ParseExpense(ctx context.Context, text string, memberNames []string) (*ParsedExpense, error)
}

// ChatSvcFacade defines group chat operations, including natural language
// expense capture.
type ChatSvcFacade interface {
	// PostMessage stores a message and, when it describes an expense, records
	// the expense and emits a system message describing the result. It returns
	// every message created by the call in order.
	PostMessage(ctx context.Context, groupID string, userID string, body string) ([]domain.ChatMessage, error)

	// ListMessages retrieves group chat history ordered oldest first.
	ListMessages(ctx context.Context, groupID string, requestingUserID string, limit int) ([]domain.ChatMessage, error)
}
