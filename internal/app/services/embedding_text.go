package services

import (
	"fmt"
	"strings"

	"github.com/retrieverhq/retriever-study/internal/app/models"
)

// groupEmbeddingText builds the canonical text a group embedding is
// derived from. Keeping the format fixed makes embeddings deterministic
// for a given title, description and tag set.
func groupEmbeddingText(group *models.Group) string {
	return fmt.Sprintf("Title: %s. Description: %s. Tags: %s.",
		group.Title, group.Description, strings.Join(group.Tags, " "))
}

// userEmbeddingText builds the canonical text a profile embedding is
// derived from.
func userEmbeddingText(user *models.User) string {
	return fmt.Sprintf("Bio: %s. Courses: %s.",
		user.Bio, strings.Join(user.Courses, " "))
}
