// Package user defines the user profile domain model: the identity fields
// issued at signup plus the mutable favorites set.
package user

import (
	"regexp"
	"strings"
)

const (
	// MaxUsernameLength caps the display name.
	MaxUsernameLength = 50

	// MinPasswordLength is the weakest password the identity layer accepts.
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the enriched profile: identity fields merged with the stored
// profile record. Favorites holds recipe IDs in insertion order; membership
// is what matters, order is preserved by the store as a convenience.
type User struct {
	UID       string
	Username  string
	Email     string
	Favorites []int
}

// NewProfile validates signup inputs and builds the initial profile with an
// empty favorites list.
func NewProfile(uid, username, email string) (*User, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, ErrInvalidUID
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	return &User{
		UID:       uid,
		Username:  username,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Favorites: []int{},
	}, nil
}

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// HasFavorite reports membership of recipeID in the favorites set.
func (u *User) HasFavorite(recipeID int) bool {
	for _, id := range u.Favorites {
		if id == recipeID {
			return true
		}
	}
	return false
}

// ToggledFavorites returns the favorites list that would result from
// toggling recipeID, without mutating the receiver. The second return
// value reports whether the toggle is an addition.
func (u *User) ToggledFavorites(recipeID int) ([]int, bool) {
	if u.HasFavorite(recipeID) {
		next := make([]int, 0, len(u.Favorites)-1)
		for _, id := range u.Favorites {
			if id != recipeID {
				next = append(next, id)
			}
		}
		return next, false
	}
	next := make([]int, 0, len(u.Favorites)+1)
	next = append(next, u.Favorites...)
	return append(next, recipeID), true
}
