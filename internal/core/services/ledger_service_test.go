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

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

var _ portsrepo.GroupRepositoryFacade = (*MockGroupRepository)(nil)

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByUser(ctx context.Context, userID string) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) AddGroupMember(ctx context.Context, groupID string, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockGroupRepo   *MockGroupRepository
	service         portssvc.LedgerSvcFacade
	group           domain.Group
	alice           string
	bob             string
	carol           string
	outsider        string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.service = services.NewLedgerService(suite.mockExpenseRepo, suite.mockGroupRepo)

	suite.alice = uuid.NewString()
	suite.bob = uuid.NewString()
	suite.carol = uuid.NewString()
	suite.outsider = uuid.NewString()
	suite.group = domain.Group{
		GroupID:   uuid.NewString(),
		Name:      "Trip",
		MemberIDs: []string{suite.alice, suite.bob, suite.carol},
		CreatedBy: suite.alice,
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestRecordExpense_Success() {
	ctx := context.Background()
	plan := domain.EqualPlan([]string{suite.alice, suite.bob, suite.carol})

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.RecordExpense(ctx, suite.group.GroupID, suite.alice, domain.Money(9000), "Dinner", domain.KindRegular, plan, nil, suite.alice)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal(suite.group.GroupID, expense.GroupID)
	suite.Equal(domain.KindRegular, expense.Kind)
	suite.Require().Len(expense.Splits, 3)
	var sum domain.Money
	for _, split := range expense.Splits {
		suite.Equal(expense.ExpenseID, split.ExpenseID)
		suite.Equal(domain.Money(3000), split.Amount)
		sum = sum.Add(split.Amount)
	}
	suite.Equal(expense.Amount, sum)

	suite.mockGroupRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_CreatorNotMember() {
	ctx := context.Background()
	plan := domain.EqualPlan(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := suite.service.RecordExpense(ctx, suite.group.GroupID, suite.alice, domain.Money(9000), "Dinner", domain.KindRegular, plan, nil, suite.outsider)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_UnknownPayer() {
	ctx := context.Background()
	plan := domain.EqualPlan(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := suite.service.RecordExpense(ctx, suite.group.GroupID, suite.outsider, domain.Money(9000), "Dinner", domain.KindRegular, plan, nil, suite.alice)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrUnknownMember)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_NonPositiveAmount() {
	ctx := context.Background()
	plan := domain.EqualPlan(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := suite.service.RecordExpense(ctx, suite.group.GroupID, suite.alice, domain.Money(0), "Dinner", domain.KindRegular, plan, nil, suite.alice)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_MissingDescription() {
	ctx := context.Background()
	plan := domain.EqualPlan(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := suite.service.RecordExpense(ctx, suite.group.GroupID, suite.alice, domain.Money(9000), "", domain.KindRegular, plan, nil, suite.alice)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_PlanRejected() {
	ctx := context.Background()
	plan := domain.ExactPlan([]domain.ExactEntry{
		{UserID: suite.alice, Amount: 4000},
		{UserID: suite.bob, Amount: 4000},
	})

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := suite.service.RecordExpense(ctx, suite.group.GroupID, suite.alice, domain.Money(9000), "Dinner", domain.KindRegular, plan, nil, suite.alice)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrSplitMismatch)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_SaveFails() {
	ctx := context.Background()
	plan := domain.EqualPlan(nil)

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(errors.New("connection reset")).Once()

	_, err := suite.service.RecordExpense(ctx, suite.group.GroupID, suite.alice, domain.Money(9000), "Dinner", domain.KindRegular, plan, nil, suite.alice)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLedgerWriteFailed)
}

func (suite *LedgerServiceTestSuite) TestGetExpense_Success() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID: uuid.NewString(),
		GroupID:   suite.group.GroupID,
		PaidBy:    suite.alice,
		Amount:    domain.Money(9000),
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	found, err := suite.service.GetExpense(ctx, expense.ExpenseID, suite.bob)

	suite.Require().NoError(err)
	suite.Equal(expense.ExpenseID, found.ExpenseID)
}

func (suite *LedgerServiceTestSuite) TestGetExpense_NotGroupMember() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID: uuid.NewString(),
		GroupID:   suite.group.GroupID,
		PaidBy:    suite.alice,
		Amount:    domain.Money(9000),
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()

	_, err := suite.service.GetExpense(ctx, expense.ExpenseID, suite.outsider)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerServiceTestSuite) TestGetExpense_NotFound() {
	ctx := context.Background()
	expenseID := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetExpense(ctx, expenseID, suite.alice)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "FindGroupByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListGroupExpenses_Success() {
	ctx := context.Background()
	expenses := []domain.Expense{
		{ExpenseID: uuid.NewString(), GroupID: suite.group.GroupID, PaidBy: suite.alice, Amount: 9000},
		{ExpenseID: uuid.NewString(), GroupID: suite.group.GroupID, PaidBy: suite.bob, Amount: 3000},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, suite.group.GroupID).Return(&suite.group, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByGroup", ctx, suite.group.GroupID).Return(expenses, nil).Once()

	listed, err := suite.service.ListGroupExpenses(ctx, suite.group.GroupID, suite.carol)

	suite.Require().NoError(err)
	suite.Len(listed, 2)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
