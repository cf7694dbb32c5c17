package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/retrieverhq/retriever-study/internal/app/models"
	appRepos "github.com/retrieverhq/retriever-study/internal/app/repositories"
)

// CreateDemoData seeds a handful of demo users and study groups for
// local development. It is a no-op when groups already exist, so
// restarting the server never duplicates data.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	groupRepo := appRepos.NewGroupRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	count, err := groupRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count groups: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("groups", count).Msg("Demo data already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding demo users and study groups...")
	var finalErr error

	demoUsers := []struct {
		googleID string
		name     string
		email    string
	}{
		{"demo-google-1", "Alex Rivera", "arivera1@umbc.edu"},
		{"demo-google-2", "Priya Natarajan", "pnatara1@umbc.edu"},
		{"demo-google-3", "Sam Okafor", "sokafor2@umbc.edu"},
	}

	users := make([]*appModels.User, 0, len(demoUsers))
	for _, du := range demoUsers {
		user, err := userRepo.UpsertOAuthUser(ctx, du.googleID, du.name, du.email, nil)
		if err != nil {
			lgr.Error().Err(err).Str("email", du.email).Msg("Error seeding demo user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		return finalErr
	}

	demoGroups := []*appModels.Group{
		{
			CourseCode:  "CMSC341",
			Title:       "Data Structures Study Crew",
			Description: "Weekly problem sets and exam prep for Data Structures.",
			Tags:        []string{"data structures", "algorithms", "exam prep"},
			TimePrefs:   []string{"weekday evenings"},
			Location:    "AOK Library",
			OwnerID:     users[0].ID,
			MaxMembers:  6,
		},
		{
			CourseCode:  "MATH221",
			Title:       "Linear Algebra Late Night",
			Description: "Working through proofs and practice problems together.",
			Tags:        []string{"linear algebra", "proofs"},
			TimePrefs:   []string{"weeknights"},
			Location:    "Math & Psychology Building",
			OwnerID:     users[1%len(users)].ID,
			MaxMembers:  8,
		},
		{
			CourseCode:  "BIOL302",
			Title:       "Molecular Biology Review Group",
			Description: "Flashcards, lecture review and lab report help.",
			Tags:        []string{"biology", "lab reports"},
			TimePrefs:   []string{"weekend afternoons"},
			Location:    "ILSB Commons",
			OwnerID:     users[2%len(users)].ID,
			MaxMembers:  5,
		},
	}

	for _, group := range demoGroups {
		if _, err := groupRepo.Create(ctx, group); err != nil {
			lgr.Error().Err(err).Str("title", group.Title).Msg("Error seeding demo group")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("users", len(users)).Int("groups", len(demoGroups)).Msg("Demo data seeded")
	return finalErr
}
