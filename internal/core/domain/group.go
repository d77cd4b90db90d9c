package domain

import "time"

// Group is a named collection of members that owns expenses.
// MemberIDs preserves insertion order for display; balance math treats it as
// a set. A group always has at least one member (its creator).
type Group struct {
	GroupID     string    `json:"groupID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []string  `json:"memberIDs"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"` // UserID of the creator
}

// MemberSet returns the membership as a set for plan resolution.
func (g Group) MemberSet() map[string]struct{} {
	set := make(map[string]struct{}, len(g.MemberIDs))
	for _, id := range g.MemberIDs {
		set[id] = struct{}{}
	}
	return set
}

// HasMember reports whether the user belongs to the group.
func (g Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
