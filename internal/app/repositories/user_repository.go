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

var userColumns = []string{
	"user_id", "google_id", "name", "email", "picture_url", "courses",
	"bio", "prefs", "embedding", "created_at", "last_login", "is_active",
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.GoogleID,
		&user.Name,
		&user.Email,
		&user.PictureURL,
		&user.Courses,
		&user.Bio,
		&user.Prefs,
		&user.Embedding,
		&user.CreatedAt,
		&user.LastLogin,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if user.Courses == nil {
		user.Courses = []string{}
	}
	if user.Prefs == nil {
		user.Prefs = map[string][]string{}
	}
	return &user, nil
}

// GetByID retrieves an active user by ID. Returns (nil, nil) when no
// user matches.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("user_id = ? AND is_active", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// GetByGoogleID retrieves a user by their Google subject identifier.
func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("google_id = ? AND is_active", googleID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// UpsertOAuthUser creates a user on first Google sign-in or refreshes
// name, picture and last_login on subsequent sign-ins.
func (r *UserRepository) UpsertOAuthUser(ctx context.Context, googleID, name, email string, pictureURL *string) (*models.User, error) {
	existing, err := r.GetByGoogleID(ctx, googleID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if existing != nil {
		query := squirrel.Update("users").
			Set("name", name).
			Set("picture_url", pictureURL).
			Set("last_login", now).
			Where("user_id = ?", existing.ID).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return nil, fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := r.db.Exec(ctx, sql, args...); err != nil {
			return nil, fmt.Errorf("error executing query: %w", err)
		}

		return r.GetByID(ctx, existing.ID)
	}

	user := &models.User{
		ID:         uuid.New().String(),
		GoogleID:   &googleID,
		Name:       name,
		Email:      email,
		PictureURL: pictureURL,
		Courses:    []string{},
		Prefs:      map[string][]string{},
		CreatedAt:  now,
		LastLogin:  now,
		IsActive:   true,
	}

	query := squirrel.Insert("users").
		Columns(
			"user_id", "google_id", "name", "email", "picture_url", "courses",
			"bio", "prefs", "embedding", "created_at", "last_login", "is_active",
		).
		Values(
			user.ID, user.GoogleID, user.Name, user.Email, user.PictureURL,
			user.Courses, user.Bio, user.Prefs, user.Embedding,
			user.CreatedAt, user.LastLogin, user.IsActive,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// UpdateProfile overwrites the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := squirrel.Update("users").
		Set("name", user.Name).
		Set("bio", user.Bio).
		Set("courses", user.Courses).
		Set("prefs", user.Prefs).
		Set("embedding", user.Embedding).
		Where("user_id = ?", user.ID).
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

// UpdateEmbedding overwrites only the profile embedding.
func (r *UserRepository) UpdateEmbedding(ctx context.Context, userID string, embedding []float64) error {
	query := squirrel.Update("users").
		Set("embedding", embedding).
		Where("user_id = ?", userID).
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
