package repositories

import (
	"context"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a specific group with its member IDs.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByUser retrieves every group the user is a member of.
	ListGroupsByUser(ctx context.Context, userID string) ([]domain.Group, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroup persists a group together with its membership rows.
	SaveGroup(ctx context.Context, group domain.Group) error

	// AddGroupMember adds a user to an existing group.
	AddGroupMember(ctx context.Context, groupID string, userID string) error
}

// GroupRepositoryFacade combines all group-related repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}
