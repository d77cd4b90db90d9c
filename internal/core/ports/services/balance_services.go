package services

import (
	"context"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// BalanceSvcFacade defines balance calculation operations
type BalanceSvcFacade interface {
	// GetGroupBreakdown computes paid, owed and net totals for every member
	// of the group.
	GetGroupBreakdown(ctx context.Context, groupID string, requestingUserID string) (*domain.GroupBreakdown, error)

	// GetUserBreakdowns computes the breakdown of every group the user
	// belongs to.
	GetUserBreakdowns(ctx context.Context, userID string) ([]domain.GroupBreakdown, error)
}
