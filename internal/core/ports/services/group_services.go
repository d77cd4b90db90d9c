package services

import (
	"context"

	"github.com/spendly/spendly_backend/internal/core/domain"
	"github.com/spendly/spendly_backend/internal/dto"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// GetGroupByID retrieves a group, verifying the requesting user is a member.
	GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error)

	// ListGroupsForUser retrieves every group the user belongs to.
	ListGroupsForUser(ctx context.Context, userID string) ([]domain.Group, error)
}

// GroupWriterSvc defines write operations for group data
type GroupWriterSvc interface {
	// CreateGroup creates a group with the creator plus any members resolved
	// from the supplied email addresses.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)

	// AddMember adds a user, looked up by email, to an existing group.
	AddMember(ctx context.Context, groupID string, email string, requestingUserID string) (*domain.Group, error)
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
}
