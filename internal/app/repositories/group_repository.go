package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retrieverhq/retriever-study/internal/app/models"
)

// groupColumns is the canonical column list scanned into a Group.
// tags, time_prefs, members and embedding are JSONB; embedding may be
// SQL NULL, which scans to a nil slice.
var groupColumns = []string{
	"group_id", "course_code", "title", "description", "tags", "time_prefs",
	"location", "owner_id", "members", "embedding", "max_members",
	"semester", "expires_at", "created_at", "updated_at",
}

// GroupRepository handles database operations for study groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

func scanGroup(row pgx.Row) (*models.Group, error) {
	var group models.Group
	err := row.Scan(
		&group.ID,
		&group.CourseCode,
		&group.Title,
		&group.Description,
		&group.Tags,
		&group.TimePrefs,
		&group.Location,
		&group.OwnerID,
		&group.Members,
		&group.Embedding,
		&group.MaxMembers,
		&group.Semester,
		&group.ExpiresAt,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Canonicalize records written before the capacity bounds existed.
	group.MaxMembers = models.ClampMaxMembers(group.MaxMembers)
	if group.Tags == nil {
		group.Tags = []string{}
	}
	if group.TimePrefs == nil {
		group.TimePrefs = []string{}
	}
	if group.Members == nil {
		group.Members = []string{}
	}
	return &group, nil
}

// Create inserts a new group. The owner is enrolled as the sole initial
// member and the requested capacity is clamped before storage.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	group.MaxMembers = models.ClampMaxMembers(group.MaxMembers)
	if len(group.Members) == 0 {
		group.Members = []string{group.OwnerID}
	}
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	query := squirrel.Insert("groups").
		Columns(
			"group_id", "course_code", "title", "description", "tags", "time_prefs",
			"location", "owner_id", "members", "embedding", "max_members",
			"semester", "expires_at", "created_at", "updated_at",
		).
		Values(
			group.ID, group.CourseCode, group.Title, group.Description, group.Tags,
			group.TimePrefs, group.Location, group.OwnerID, group.Members,
			group.Embedding, group.MaxMembers, group.Semester, group.ExpiresAt,
			group.CreatedAt, group.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return group, nil
}

// GetByID retrieves a single group by its ID. Returns (nil, nil) when
// no group matches.
func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (*models.Group, error) {
	query := squirrel.Select(groupColumns...).
		From("groups").
		Where("group_id = ?", groupID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	group, err := scanGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return group, nil
}

// GetAll retrieves groups ordered by creation time, newest first.
func (r *GroupRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Group, error) {
	query := squirrel.Select(groupColumns...).
		From("groups").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryGroups(ctx, query)
}

// GetByCourse retrieves all groups for a specific course code.
func (r *GroupRepository) GetByCourse(ctx context.Context, courseCode string) ([]*models.Group, error) {
	query := squirrel.Select(groupColumns...).
		From("groups").
		Where("course_code = ?", courseCode).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryGroups(ctx, query)
}

// GetForMember retrieves all groups whose member list contains the user.
func (r *GroupRepository) GetForMember(ctx context.Context, userID string) ([]*models.Group, error) {
	query := squirrel.Select(groupColumns...).
		From("groups").
		Where(squirrel.Expr("members @> to_jsonb(ARRAY[?]::text[])", userID)).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryGroups(ctx, query)
}

// Update overwrites the mutable descriptive fields of a group.
// Membership changes go through UpdateMembers instead.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	group.MaxMembers = models.ClampMaxMembers(group.MaxMembers)
	group.UpdatedAt = time.Now().UTC()

	query := squirrel.Update("groups").
		Set("title", group.Title).
		Set("description", group.Description).
		Set("tags", group.Tags).
		Set("time_prefs", group.TimePrefs).
		Set("location", group.Location).
		Set("max_members", group.MaxMembers).
		Set("embedding", group.Embedding).
		Set("updated_at", group.UpdatedAt).
		Where("group_id = ?", group.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// UpdateMembers replaces the member list of a group.
func (r *GroupRepository) UpdateMembers(ctx context.Context, groupID string, members []string) error {
	query := squirrel.Update("groups").
		Set("members", members).
		Set("updated_at", time.Now().UTC()).
		Where("group_id = ?", groupID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// UpdateEmbedding overwrites only the embedding field. A missing group
// id is a silent no-op.
func (r *GroupRepository) UpdateEmbedding(ctx context.Context, groupID string, embedding []float64) error {
	query := squirrel.Update("groups").
		Set("embedding", embedding).
		Set("updated_at", time.Now().UTC()).
		Where("group_id = ?", groupID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Count returns the total number of groups.
func (r *GroupRepository) Count(ctx context.Context) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("groups").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

func (r *GroupRepository) queryGroups(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Group, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}
