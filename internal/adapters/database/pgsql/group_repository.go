package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendly/spendly_backend/internal/apperrors"
	"github.com/spendly/spendly_backend/internal/core/domain"
	portsrepo "github.com/spendly/spendly_backend/internal/core/ports/repositories"
)

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for group data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{BaseRepository{Pool: pool}}
}

// SaveGroup saves a group and its membership rows within a DB transaction.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	groupQuery := `
		INSERT INTO groups (group_id, name, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, groupQuery,
		group.GroupID,
		group.Name,
		group.Description,
		group.CreatedAt,
		group.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group %s: %w", group.GroupID, err)
	}

	batch := &pgx.Batch{}
	memberQuery := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2);
	`
	for _, userID := range group.MemberIDs {
		batch.Queue(memberQuery, group.GroupID, userID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute member batch for group %s: %w", group.GroupID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to save group %s: %w", group.GroupID, err)
	}
	return nil
}

func (r *PgxGroupRepository) AddGroupMember(ctx context.Context, groupID string, userID string) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2);
	`
	if _, err := r.Pool.Exec(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to add member %s to group %s: %w", userID, groupID, err)
	}
	return nil
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
		SELECT group_id, name, description, created_at, created_by
		FROM groups
		WHERE group_id = $1;
	`
	var group domain.Group
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(
		&group.GroupID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
		&group.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by ID %s: %w", groupID, err)
	}

	memberQuery := `
		SELECT user_id
		FROM group_members
		WHERE group_id = $1
		ORDER BY user_id;
	`
	rows, err := r.Pool.Query(ctx, memberQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members for group %s: %w", groupID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan member row for group %s: %w", groupID, err)
		}
		group.MemberIDs = append(group.MemberIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows for group %s: %w", groupID, err)
	}
	return &group, nil
}

func (r *PgxGroupRepository) ListGroupsByUser(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
		SELECT g.group_id, g.name, g.description, g.created_at, g.created_by
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.group_id
		WHERE gm.user_id = $1
		ORDER BY g.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %s: %w", userID, err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(&group.GroupID, &group.Name, &group.Description, &group.CreatedAt, &group.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan group row for user %s: %w", userID, err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows for user %s: %w", userID, err)
	}

	for i := range groups {
		full, err := r.FindGroupByID(ctx, groups[i].GroupID)
		if err != nil {
			return nil, err
		}
		groups[i].MemberIDs = full.MemberIDs
	}
	return groups, nil
}
