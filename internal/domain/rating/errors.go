package rating

import "errors"

var (
	ErrInvalidUserID   = errors.New("rating user id is required")
	ErrInvalidRecipeID = errors.New("rating recipe id must not be negative")
	ErrValueOutOfRange = errors.New("rating must be an integer between 1 and 5")
	ErrCommentTooLong  = errors.New("rating comment must not exceed 1000 characters")
	ErrRatingNotFound  = errors.New("rating not found")
	ErrNotOwner        = errors.New("only the rating's author may delete it")
)
