package userstore

import (
	"errors"
	"strings"
)

var (
	// ErrUserNotFound indicates no user matches the given id or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists indicates the username or email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidUsername indicates a username outside 3-20 letters, digits, or underscores.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidRating indicates a rating outside 1-10.
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
	// ErrInvalidTitle indicates an empty movie title.
	ErrInvalidTitle = errors.New("title is required")
)

const (
	sqliteBusyCode       = 5
	sqliteConstraintCode = 19
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteConstraintCode {
		return strings.Contains(err.Error(), "UNIQUE")
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
