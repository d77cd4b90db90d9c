package dto

import (
	"time"

	"github.com/spendly/spendly_backend/internal/core/domain"
)

// CreateGroupRequest defines the data required to create a group.
// MemberEmails are resolved to registered users; the creator is always a
// member regardless of the list.
type CreateGroupRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	MemberEmails []string `json:"memberEmails" binding:"omitempty,dive,email"`
}

// AddMemberRequest defines the data required to add a member to a group.
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GroupResponse defines the data returned for a group.
type GroupResponse struct {
	GroupID     string    `json:"groupID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []string  `json:"memberIDs"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ListGroupsResponse wraps the list of groups for a user.
type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ToGroupResponse converts a domain.Group to GroupResponse DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:     g.GroupID,
		Name:        g.Name,
		Description: g.Description,
		MemberIDs:   g.MemberIDs,
		CreatedAt:   g.CreatedAt,
		CreatedBy:   g.CreatedBy,
	}
}

// ToListGroupsResponse converts a slice of domain.Group to ListGroupsResponse.
func ToListGroupsResponse(groups []domain.Group) ListGroupsResponse {
	responses := make([]GroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = ToGroupResponse(&g)
	}
	return ListGroupsResponse{Groups: responses}
}
