package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
	portssvc "github.com/spendly/spendly_backend/internal/core/ports/services"
	"github.com/spendly/spendly_backend/internal/dto"
	"github.com/spendly/spendly_backend/internal/middleware"
)

// groupService manages groups and their membership rosters.
type groupService struct {
	groupRepo portsrepo.GroupRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewGroupService creates a new group service.
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.GroupSvcFacade {
	return &groupService{groupRepo: groupRepo, userRepo: userRepo}
}

var _ portssvc.GroupSvcFacade = (*groupService)(nil)

func (s *groupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	memberIDs := map[string]struct{}{creatorUserID: {}}
	for _, email := range req.MemberEmails {
		user, err := s.userRepo.FindUserByEmail(ctx, email)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, fmt.Errorf("%w: no registered user with email %s", apperrors.ErrValidation, email)
			}
			logger.Error("Failed to resolve member email", slog.String("email", email), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to resolve member email: %w", err)
		}
		memberIDs[user.UserID] = struct{}{}
	}

	ids := make([]string, 0, len(memberIDs))
	for id := range memberIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	group := domain.Group{
		GroupID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   ids,
		CreatedAt:   time.Now(),
		CreatedBy:   creatorUserID,
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		logger.Error("Failed to save group", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	logger.Info("Group created", slog.String("group_id", group.GroupID), slog.Int("members", len(ids)))
	return &group, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if !group.HasMember(requestingUserID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, requestingUserID, groupID)
	}
	return group, nil
}

func (s *groupService) ListGroupsForUser(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) AddMember(ctx context.Context, groupID string, email string, requestingUserID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.GetGroupByID(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: no registered user with email %s", apperrors.ErrValidation, email)
		}
		return nil, fmt.Errorf("failed to resolve member email: %w", err)
	}

	if group.HasMember(user.UserID) {
		return nil, fmt.Errorf("%w: user %s is already a member of group %s", apperrors.ErrDuplicate, user.UserID, groupID)
	}

	if err := s.groupRepo.AddGroupMember(ctx, groupID, user.UserID); err != nil {
		logger.Error("Failed to add group member", slog.String("group_id", groupID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to add group member: %w", err)
	}

	group.MemberIDs = append(group.MemberIDs, user.UserID)
	sort.Strings(group.MemberIDs)
	logger.Info("Member added to group", slog.String("group_id", groupID), slog.String("user_id", user.UserID))
	return group, nil
}
