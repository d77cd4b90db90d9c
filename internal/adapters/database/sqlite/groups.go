package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
)

type groupRepository struct {
	store *Store
}

var _ portsrepo.GroupRepositoryFacade = (*groupRepository)(nil)

// SaveGroup persists a group and its membership rows in one transaction.
func (r *groupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (group_id, name, description, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?)`,
		group.GroupID, group.Name, group.Description, group.CreatedAt, group.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, userID := range group.MemberIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id) VALUES (?, ?)",
			group.GroupID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *groupRepository) AddGroupMember(ctx context.Context, groupID string, userID string) error {
	_, err := r.store.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id) VALUES (?, ?)",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

func (r *groupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	group := &domain.Group{}
	err := r.store.db.QueryRowContext(ctx,
		"SELECT group_id, name, description, created_at, created_by FROM groups WHERE group_id = ?",
		groupID,
	).Scan(&group.GroupID, &group.Name, &group.Description, &group.CreatedAt, &group.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := r.store.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY user_id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		group.MemberIDs = append(group.MemberIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return group, nil
}

func (r *groupRepository) ListGroupsByUser(ctx context.Context, userID string) ([]domain.Group, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT g.group_id FROM groups g
		 JOIN group_members gm ON gm.group_id = g.group_id
		 WHERE gm.user_id = ?
		 ORDER BY g.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groupIDs []string
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groupIDs = append(groupIDs, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]domain.Group, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		group, err := r.FindGroupByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}
