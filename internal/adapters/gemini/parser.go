// Package gemini implements natural language expense parsing on top of the
// Generative Language API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"github.com/spendly/spendly_backend/internal/core/domain"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
)

// jsonPattern extracts the first JSON object from a model reply, which may
// be wrapped in markdown fences or prose.
var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Parser extracts expense candidates from free-form chat messages.
type Parser struct {
	service *generativelanguage.Service
	model   string
}

var _ portssvc.ExpenseParser = (*Parser)(nil)

// NewParser creates a parser backed by the Generative Language API.
func NewParser(ctx context.Context, apiKey string, model string) (*Parser, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	service, err := generativelanguage.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create generative language service: %w", err)
	}
	return &Parser{service: service, model: model}, nil
}

// wireExpense is the JSON shape the model is instructed to produce.
type wireExpense struct {
	Error       string      `json:"error"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	PaidBy      string      `json:"paid_by"`
	Splits      []wireShare `json:"splits"`
}

type wireShare struct {
	User   string  `json:"user"`
	Amount float64 `json:"amount"`
}

// ParseExpense asks the model to interpret the message. It returns (nil, nil)
// when the message does not describe an expense.
func (p *Parser) ParseExpense(ctx context.Context, text string, memberNames []string) (*portssvc.ParsedExpense, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: buildPrompt(text, memberNames)}},
			},
		},
	}

	resp, err := p.service.Models.GenerateContent("models/"+p.model, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("generate content call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty model response")
	}

	raw := jsonPattern.FindString(resp.Candidates[0].Content.Parts[0].Text)
	if raw == "" {
		return nil, nil
	}

	var wire wireExpense
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode model reply: %w", err)
	}
	if wire.Error != "" {
		return nil, nil
	}

	amount, err := toMoney(wire.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid total in model reply: %w", err)
	}

	parsed := &portssvc.ParsedExpense{
		Description: wire.Description,
		Amount:      amount,
		PayerName:   wire.PaidBy,
		Shares:      make([]portssvc.ParsedShare, len(wire.Splits)),
	}
	for i, share := range wire.Splits {
		shareAmount, err := toMoney(share.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid share for %s in model reply: %w", share.User, err)
		}
		parsed.Shares[i] = portssvc.ParsedShare{MemberName: share.User, Amount: shareAmount}
	}
	return parsed, nil
}

// toMoney converts a model-produced float to minor units. Replies are rounded
// to two decimal places first so float noise does not reject valid amounts.
func toMoney(value float64) (domain.Money, error) {
	return domain.MoneyFromDecimal(decimal.NewFromFloat(value).Round(2))
}

func buildPrompt(message string, memberNames []string) string {
	names := "any user names mentioned"
	if len(memberNames) > 0 {
		names = strings.Join(memberNames, ", ")
	}

	var b strings.Builder
	b.WriteString("Parse this expense message and extract the expense details.\n\n")
	fmt.Fprintf(&b, "Message: %q\n", message)
	fmt.Fprintf(&b, "Available users: %s\n\n", names)
	b.WriteString(`Understand these scenarios:
1. Equal splitting: "John paid $60 for dinner, split equally among John, Mary and Bob"
2. Ratio splitting: "Alice paid $150 for food, split 2/3 to Fury, rest to Alice"
3. Percentage splitting: "Bob paid $100 for groceries, 70% to Alice, 30% to Bob"
4. Custom amounts: "Mary paid $80 for taxi, John owes $30, Bob owes $20, Mary keeps $30"
5. Lending: "Alice lent $50 to Bob"

Return a JSON object in this exact format:
{
  "description": "description of expense",
  "amount": 150.0,
  "paid_by": "name of person who paid",
  "splits": [
    {"user": "Fury", "amount": 100.0},
    {"user": "Alice", "amount": 50.0}
  ]
}

Rules:
- Compute exact share amounts from ratios or percentages.
- The splits array must sum to the total amount.
- Use only the available user names.
- If the message is not about an expense or cannot be parsed, return {"error": "Could not parse expense from message"}.
`)
	return b.String()
}
