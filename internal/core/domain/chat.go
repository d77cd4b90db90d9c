package domain

import "time"

// ChatMessageKind describes who or what produced a chat message.
type ChatMessageKind string

const (
	ChatText    ChatMessageKind = "TEXT"    // plain message from a member
	ChatExpense ChatMessageKind = "EXPENSE" // member message that became an expense
	ChatSystem  ChatMessageKind = "SYSTEM"  // generated confirmation
)

// ChatMessage is one entry in a group's conversation. Messages that produced
// an expense carry its id so history links back to the ledger.
type ChatMessage struct {
	MessageID string          `json:"messageID"`
	GroupID   string          `json:"groupID"`
	UserID    string          `json:"userID"`
	Body      string          `json:"body"`
	Kind      ChatMessageKind `json:"kind"`
	ExpenseID *string         `json:"expenseID,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
