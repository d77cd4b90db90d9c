package domain

import "time"

// ExpenseKind distinguishes ordinary expenses from recorded settlements.
// Settlements flow through the same append-only history so that balance
// corrections stay auditable.
type ExpenseKind string

const (
	KindRegular    ExpenseKind = "REGULAR"
	KindSettlement ExpenseKind = "SETTLEMENT"
)

// Expense is an atomic monetary event within a group. Created once, never
// mutated; mistakes are corrected by recording an inverse expense.
type Expense struct {
	ExpenseID   string      `json:"expenseID"`
	GroupID     string      `json:"groupID"`
	PaidBy      string      `json:"paidBy"` // UserID of the payer, a group member
	Amount      Money       `json:"amount"` // always positive
	Description string      `json:"description"`
	Kind        ExpenseKind `json:"kind"`
	SourceText  *string     `json:"sourceText,omitempty"` // original chat message, for audit
	CreatedAt   time.Time   `json:"createdAt"`
	CreatedBy   string      `json:"createdBy"`
	Splits      []Split     `json:"splits"`
}

// Split states how much one member owes toward one expense. Splits are
// written atomically with their expense; their amounts sum to the expense
// amount exactly.
type Split struct {
	ExpenseID string `json:"expenseID"`
	UserID    string `json:"userID"`
	Amount    Money  `json:"amount"` // non-negative
}
