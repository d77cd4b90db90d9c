package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/middleware"
)

// chatService stores group chat messages and turns messages that describe an
// expense into ledger entries. A nil parser disables expense capture; chat
// then behaves as plain messaging.
type chatService struct {
	chatRepo  portsrepo.ChatRepositoryFacade
	groupRepo portsrepo.GroupRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
	ledgerSvc portssvc.LedgerSvcFacade
	parser    portssvc.ExpenseParser
}

// NewChatService creates a new chat service.
func NewChatService(chatRepo portsrepo.ChatRepositoryFacade, groupRepo portsrepo.GroupRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade, parser portssvc.ExpenseParser) portssvc.ChatSvcFacade {
	return &chatService{
		chatRepo:  chatRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		ledgerSvc: ledgerSvc,
		parser:    parser,
	}
}

var _ portssvc.ChatSvcFacade = (*chatService)(nil)

func (s *chatService) PostMessage(ctx context.Context, groupID string, userID string, body string) ([]domain.ChatMessage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if !group.HasMember(userID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, userID, groupID)
	}

	userMessage := domain.ChatMessage{
		MessageID: uuid.NewString(),
		GroupID:   groupID,
		UserID:    userID,
		Body:      body,
		Kind:      domain.ChatText,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.SaveMessage(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	messages := []domain.ChatMessage{userMessage}

	if s.parser == nil {
		return messages, nil
	}

	users, err := s.userRepo.FindUsersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load member names: %w", err)
	}
	memberNames := make([]string, 0, len(group.MemberIDs))
	nameToID := make(map[string]string, len(users))
	for _, id := range group.MemberIDs {
		if user, ok := users[id]; ok {
			memberNames = append(memberNames, user.Name)
			nameToID[strings.ToLower(user.Name)] = user.UserID
		}
	}

	parsed, err := s.parser.ParseExpense(ctx, body, memberNames)
	if err != nil {
		logger.Warn("Expense parsing failed", slog.String("group_id", groupID), slog.String("error", err.Error()))
		return messages, nil
	}
	if parsed == nil {
		return messages, nil
	}

	expense, err := s.recordParsedExpense(ctx, group, userID, body, parsed, nameToID)
	if err != nil {
		logger.Warn("Interpreted expense rejected", slog.String("group_id", groupID), slog.String("error", err.Error()))
		notice, saveErr := s.saveSystemMessage(ctx, groupID, userID, fmt.Sprintf("Could not record expense: %s", err.Error()), nil)
		if saveErr != nil {
			return nil, saveErr
		}
		return append(messages, *notice), nil
	}

	confirmation := domain.ChatMessage{
		MessageID: uuid.NewString(),
		GroupID:   groupID,
		UserID:    userID,
		Body:      fmt.Sprintf("Recorded expense: %s (%s) paid by %s", expense.Description, expense.Amount, parsed.PayerName),
		Kind:      domain.ChatExpense,
		ExpenseID: &expense.ExpenseID,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.SaveMessage(ctx, confirmation); err != nil {
		return nil, fmt.Errorf("failed to save confirmation message: %w", err)
	}
	return append(messages, confirmation), nil
}

func (s *chatService) ListMessages(ctx context.Context, groupID string, requestingUserID string, limit int) ([]domain.ChatMessage, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if !group.HasMember(requestingUserID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, requestingUserID, groupID)
	}
	return s.chatRepo.ListMessagesByGroup(ctx, groupID, limit)
}

// recordParsedExpense maps the parsed member names back to user IDs and
// records the expense with an exact split. The resolver rejects share sets
// that do not sum to the parsed total, so a bad interpretation never reaches
// the ledger.
func (s *chatService) recordParsedExpense(ctx context.Context, group *domain.Group, senderID string, sourceText string, parsed *portssvc.ParsedExpense, nameToID map[string]string) (*domain.Expense, error) {
	payerID, ok := nameToID[strings.ToLower(parsed.PayerName)]
	if !ok {
		return nil, fmt.Errorf("%w: payer %q is not a group member", domain.ErrUnknownMember, parsed.PayerName)
	}

	exacts := make([]domain.ExactEntry, 0, len(parsed.Shares))
	for _, share := range parsed.Shares {
		userID, ok := nameToID[strings.ToLower(share.MemberName)]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a group member", domain.ErrUnknownMember, share.MemberName)
		}
		exacts = append(exacts, domain.ExactEntry{UserID: userID, Amount: share.Amount})
	}

	src := sourceText
	return s.ledgerSvc.RecordExpense(ctx, group.GroupID, payerID, parsed.Amount, parsed.Description, domain.KindRegular, domain.ExactPlan(exacts), &src, senderID)
}

func (s *chatService) saveSystemMessage(ctx context.Context, groupID string, userID string, body string, expenseID *string) (*domain.ChatMessage, error) {
	message := domain.ChatMessage{
		MessageID: uuid.NewString(),
		GroupID:   groupID,
		UserID:    userID,
		Body:      body,
		Kind:      domain.ChatSystem,
		ExpenseID: expenseID,
		CreatedAt: time.Now(),
	}
	if err := s.chatRepo.SaveMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save system message: %w", err)
	}
	return &message, nil
}
