package model

import "errors"

var (
	// Validation / business rule errors
	ErrUsernameTaken    = errors.New("username already taken")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrUserNotFound     = errors.New("user not found")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrWrongCredentials):
		return 401
	case errors.Is(err, ErrUserNotFound):
		return 404
	case errors.Is(err, ErrUsernameTaken):
		return 409
	default:
		return 500
	}
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrWrongCredentials):
		return "WRONG_CREDENTIALS"
	case errors.Is(err, ErrUserNotFound):
		return "USER_NOT_FOUND"
	case errors.Is(err, ErrUsernameTaken):
		return "USERNAME_TAKEN"
	default:
		return "INTERNAL_ERROR"
	}
}
