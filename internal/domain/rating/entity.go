// Package rating contains the rating/comment domain model. A rating is
// created once by its author, never updated in place, and may only be
// deleted by that same author.
package rating

import (
	"strings"
	"time"
)

const (
	// MinValue and MaxValue bound the star rating, inclusive.
	MinValue = 1
	MaxValue = 5

	// MaxCommentLength caps the free-text comment.
	MaxCommentLength = 1000
)

// Rating links a user to a recipe with a star value and a comment. The
// username is a denormalized copy taken at creation time; it is not
// re-synced when the user later renames themselves.
type Rating struct {
	ID        string
	RecipeID  int
	UserID    string
	Username  string
	Value     int
	Comment   string
	CreatedAt time.Time
}

// New validates the inputs and builds a Rating ready for persistence.
// The ID and CreatedAt are assigned by the store (auto key, server
// timestamp), so they are left zero here.
func New(recipeID int, userID, username string, value int, comment string) (*Rating, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}
	if recipeID < 0 {
		return nil, ErrInvalidRecipeID
	}
	if value < MinValue || value > MaxValue {
		return nil, ErrValueOutOfRange
	}
	if len(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	return &Rating{
		RecipeID: recipeID,
		UserID:   userID,
		Username: username,
		Value:    value,
		Comment:  comment,
	}, nil
}

// OwnedBy reports whether userID is the rating's author.
func (r Rating) OwnedBy(userID string) bool {
	return r.UserID == userID
}
