package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/core/services"
)

// --- Mock ChatRepository ---
type MockChatRepository struct {
	mock.Mock
}

var _ portsrepo.ChatRepositoryFacade = (*MockChatRepository)(nil)

func (m *MockChatRepository) ListMessagesByGroup(ctx context.Context, groupID string, limit int) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, groupID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) SaveMessage(ctx context.Context, message domain.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock ExpenseParser ---
type MockExpenseParser struct {
	mock.Mock
}

var _ portssvc.ExpenseParser = (*MockExpenseParser)(nil)

func (m *MockExpenseParser) ParseExpense(ctx context.Context, text string, memberNames []string) (*portssvc.ParsedExpense, error) {
	args := m.Called(ctx, text, memberNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ParsedExpense), args.Error(1)
}

// --- Test Suite Setup ---
type ChatServiceTestSuite struct {
	suite.Suite
	mockChatRepo  *MockChatRepository
	mockGroupRepo *MockGroupRepository
	mockUserRepo  *MockUserRepository
	mockLedgerSvc *MockLedgerService
	mockParser    *MockExpenseParser
	group         domain.Group
	users         map[string]domain.User
	alice         string
	bob           string
	outsider      string
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.mockChatRepo = new(MockChatRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockParser = new(MockExpenseParser)

	suite.alice = uuid.NewString()
	suite.bob = uuid.NewString()
	suite.outsider = uuid.NewString()
	suite.group = domain.Group{
		GroupID:   uuid.NewString(),
		Name:      "Flat",
		MemberIDs: []string{suite.alice, suite.bob},
		CreatedBy: suite.alice,
	}
	suite.users = map[string]domain.User{
		suite.alice: {UserID: suite.alice, Name: "Alice"},
		suite.bob:   {UserID: suite.bob, Name: "Bob"},
	}
}

func (suite *ChatServiceTestSuite) newService(parser portssvc.ExpenseParser) portssvc.ChatSvcFacade {
	return services.NewChatService(suite.mockChatRepo, suite.mockGroupRepo, suite.mockUserRepo, suite.mockLedgerSvc, parser)
}

func savedKinds(calls []mock.Call) []domain.ChatMessageKind {
	var kinds []domain.ChatMessageKind
	for _, call := range calls {
		if call.Method == "SaveMessage" {
			kinds = append(kinds, call.Arguments.Get(1).(domain.ChatMessage).Kind)
		}
	}
	return kinds
}

// --- Test Cases ---

func (suite *ChatServiceTestSuite) TestPostMessage_PlainTextWithoutParser() {
	ctx := context.Background()
	service := suite.newService(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Once()

	messages, err := service.PostMessage(ctx, suite.group.GroupID, suite.alice, "see you at 8")

	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal(domain.ChatText, messages[0].Kind)
	suite.Equal("see you at 8", messages[0].Body)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsersByIDs", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestPostMessage_NotMember() {
	ctx := context.Background()
	service := suite.newService(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := service.PostMessage(ctx, suite.group.GroupID, suite.outsider, "hello")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "SaveMessage", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestPostMessage_ParserDeclines() {
	ctx := context.Background()
	service := suite.newService(suite.mockParser)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, suite.group.MemberIDs).Return(suite.users, nil).Once()
	suite.mockParser.On("ParseExpense", ctx, "see you at 8", []string{"Alice", "Bob"}).Return(nil, nil).Once()

	messages, err := service.PostMessage(ctx, suite.group.GroupID, suite.alice, "see you at 8")

	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal(domain.ChatText, messages[0].Kind)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "RecordExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestPostMessage_ParserFailureKeepsText() {
	ctx := context.Background()
	service := suite.newService(suite.mockParser)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, suite.group.MemberIDs).Return(suite.users, nil).Once()
	suite.mockParser.On("ParseExpense", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("model unavailable")).Once()

	messages, err := service.PostMessage(ctx, suite.group.GroupID, suite.alice, "I paid 90 for dinner")

	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal(domain.ChatText, messages[0].Kind)
}

func (suite *ChatServiceTestSuite) TestPostMessage_RecordsParsedExpense() {
	ctx := context.Background()
	service := suite.newService(suite.mockParser)
	body := "I paid 90 for dinner, split with Bob"
	parsed := &portssvc.ParsedExpense{
		Description: "dinner",
		Amount:      domain.Money(9000),
		PayerName:   "alice",
		Shares: []portssvc.ParsedShare{
			{MemberName: "Alice", Amount: 4500},
			{MemberName: "bob", Amount: 4500},
		},
	}
	recorded := &domain.Expense{
		ExpenseID:   uuid.NewString(),
		GroupID:     suite.group.GroupID,
		PaidBy:      suite.alice,
		Amount:      domain.Money(9000),
		Description: "dinner",
		Kind:        domain.KindRegular,
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Twice()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, suite.group.MemberIDs).Return(suite.users, nil).Once()
	suite.mockParser.On("ParseExpense", ctx, body, []string{"Alice", "Bob"}).Return(parsed, nil).Once()

	expectedPlan := domain.ExactPlan([]domain.ExactEntry{
		{UserID: suite.alice, Amount: 4500},
		{UserID: suite.bob, Amount: 4500},
	})
	suite.mockLedgerSvc.On("RecordExpense", ctx, suite.group.GroupID, suite.alice, domain.Money(9000), "dinner", domain.KindRegular, expectedPlan, &body, suite.alice).Return(recorded, nil).Once()

	messages, err := service.PostMessage(ctx, suite.group.GroupID, suite.alice, body)

	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal(domain.ChatText, messages[0].Kind)
	suite.Equal(domain.ChatExpense, messages[1].Kind)
	suite.Require().NotNil(messages[1].ExpenseID)
	suite.Equal(recorded.ExpenseID, *messages[1].ExpenseID)
	suite.Contains(messages[1].Body, "dinner")
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestPostMessage_UnknownNameLeavesSystemNotice() {
	ctx := context.Background()
	service := suite.newService(suite.mockParser)
	parsed := &portssvc.ParsedExpense{
		Description: "dinner",
		Amount:      domain.Money(9000),
		PayerName:   "Dave",
		Shares:      []portssvc.ParsedShare{{MemberName: "Dave", Amount: 9000}},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Twice()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, suite.group.MemberIDs).Return(suite.users, nil).Once()
	suite.mockParser.On("ParseExpense", ctx, mock.Anything, mock.Anything).Return(parsed, nil).Once()

	messages, err := service.PostMessage(ctx, suite.group.GroupID, suite.alice, "Dave paid 90 for dinner")

	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal([]domain.ChatMessageKind{domain.ChatText, domain.ChatSystem}, savedKinds(suite.mockChatRepo.Calls))
	suite.Contains(messages[1].Body, "Could not record expense")
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "RecordExpense", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestPostMessage_RejectedExpenseLeavesSystemNotice() {
	ctx := context.Background()
	service := suite.newService(suite.mockParser)
	parsed := &portssvc.ParsedExpense{
		Description: "dinner",
		Amount:      domain.Money(9000),
		PayerName:   "Alice",
		Shares: []portssvc.ParsedShare{
			{MemberName: "Alice", Amount: 4000},
			{MemberName: "Bob", Amount: 4000},
		},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Twice()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, suite.group.MemberIDs).Return(suite.users, nil).Once()
	suite.mockParser.On("ParseExpense", ctx, mock.Anything, mock.Anything).Return(parsed, nil).Once()
	suite.mockLedgerSvc.On("RecordExpense", ctx, suite.group.GroupID, suite.alice, domain.Money(9000), "dinner", domain.KindRegular, mock.AnythingOfType("domain.SplitPlan"), mock.AnythingOfType("*string"), suite.alice).Return(nil, domain.ErrSplitMismatch).Once()

	messages, err := service.PostMessage(ctx, suite.group.GroupID, suite.alice, "I paid 90 for dinner")

	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal(domain.ChatSystem, messages[1].Kind)
}

func (suite *ChatServiceTestSuite) TestListMessages() {
	ctx := context.Background()
	service := suite.newService(nil)
	stored := []domain.ChatMessage{
		{MessageID: uuid.NewString(), GroupID: suite.group.GroupID, Kind: domain.ChatText},
		{MessageID: uuid.NewString(), GroupID: suite.group.GroupID, Kind: domain.ChatExpense},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockChatRepo.On("ListMessagesByGroup", ctx, suite.group.GroupID, 50).Return(stored, nil).Once()

	messages, err := service.ListMessages(ctx, suite.group.GroupID, suite.bob, 50)

	suite.Require().NoError(err)
	suite.Len(messages, 2)
}

func (suite *ChatServiceTestSuite) TestListMessages_NotMember() {
	ctx := context.Background()
	service := suite.newService(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := service.ListMessages(ctx, suite.group.GroupID, suite.outsider, 50)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
