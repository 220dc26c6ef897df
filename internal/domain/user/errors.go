package user

import "errors"

var (
	ErrInvalidUID       = errors.New("user id is required")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must not exceed 50 characters")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrUserNotFound     = errors.New("user not found")
)
