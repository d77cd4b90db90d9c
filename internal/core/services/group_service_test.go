package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/core/services"
	"github.com/spendly/spendly_backend/internal/dto"
)

type GroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo *MockGroupRepository
	mockUserRepo  *MockUserRepository
	service       portssvc.GroupSvcFacade
	creator       domain.User
	friend        domain.User
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewGroupService(suite.mockGroupRepo, suite.mockUserRepo)

	suite.creator = domain.User{UserID: uuid.NewString(), Name: "Alice", Email: "alice@example.com"}
	suite.friend = domain.User{UserID: uuid.NewString(), Name: "Bob", Email: "bob@example.com"}
}

func (suite *GroupServiceTestSuite) TestCreateGroup_Success() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{Name: "Flat", MemberEmails: []string{suite.friend.Email}}

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.friend.Email).Return(&suite.friend, nil).Once()
	suite.mockGroupRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.Group")).Return(nil).Once()

	group, err := suite.service.CreateGroup(ctx, req, suite.creator.UserID)

	suite.Require().NoError(err)
	suite.NotEmpty(group.GroupID)
	suite.Equal(suite.creator.UserID, group.CreatedBy)
	suite.Require().Len(group.MemberIDs, 2)
	suite.True(group.HasMember(suite.creator.UserID))
	suite.True(group.HasMember(suite.friend.UserID))
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestCreateGroup_CreatorEmailNotDuplicated() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{Name: "Solo", MemberEmails: []string{suite.creator.Email}}

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.creator.Email).Return(&suite.creator, nil).Once()
	suite.mockGroupRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.Group")).Return(nil).Once()

	group, err := suite.service.CreateGroup(ctx, req, suite.creator.UserID)

	suite.Require().NoError(err)
	suite.Equal([]string{suite.creator.UserID}, group.MemberIDs)
}

func (suite *GroupServiceTestSuite) TestCreateGroup_UnknownEmail() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{Name: "Flat", MemberEmails: []string{"nobody@example.com"}}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateGroup(ctx, req, suite.creator.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestGetGroupByID_NotMember() {
	ctx := context.Background()
	group := domain.Group{GroupID: uuid.NewString(), MemberIDs: []string{suite.creator.UserID}}

	suite.mockGroupRepo.On("FindGroupByID", ctx, group.GroupID).Return(&group, nil).Once()

	_, err := suite.service.GetGroupByID(ctx, group.GroupID, suite.friend.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GroupServiceTestSuite) TestAddMember_Success() {
	ctx := context.Background()
	group := domain.Group{GroupID: uuid.NewString(), MemberIDs: []string{suite.creator.UserID}}

	suite.mockGroupRepo.On("FindGroupByID", ctx, group.GroupID).Return(&group, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.friend.Email).Return(&suite.friend, nil).Once()
	suite.mockGroupRepo.On("AddGroupMember", ctx, group.GroupID, suite.friend.UserID).Return(nil).Once()

	updated, err := suite.service.AddMember(ctx, group.GroupID, suite.friend.Email, suite.creator.UserID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.MemberIDs, 2)
	suite.True(updated.HasMember(suite.friend.UserID))
}

func (suite *GroupServiceTestSuite) TestAddMember_AlreadyMember() {
	ctx := context.Background()
	group := domain.Group{GroupID: uuid.NewString(), MemberIDs: []string{suite.creator.UserID, suite.friend.UserID}}

	suite.mockGroupRepo.On("FindGroupByID", ctx, group.GroupID).Return(&group, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.friend.Email).Return(&suite.friend, nil).Once()

	_, err := suite.service.AddMember(ctx, group.GroupID, suite.friend.Email, suite.creator.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "AddGroupMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
