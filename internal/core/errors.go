// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrPremiumRequired = errors.New("premium required")
	ErrUnavailable     = errors.New("unavailable")
	ErrTokenMissing    = errors.New("token missing")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
)

type AppError struct {
	Err        error  `json:"-"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, "INVALID_INPUT")
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func PremiumRequiredError() *AppError {
	return NewAppError(
		ErrPremiumRequired,
		"this tool requires a premium account",
		http.StatusForbidden,
		"PREMIUM_REQUIRED",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrNotFound, resource+" not found", http.StatusNotFound, "NOT_FOUND")
}

func ConflictError(message, code string) *AppError {
	return NewAppError(ErrConflict, message, http.StatusConflict, code)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		field+" already exists",
		http.StatusConflict,
		"DUPLICATE",
	)
}

func UnavailableError(message string) *AppError {
	return NewAppError(ErrUnavailable, message, http.StatusServiceUnavailable, "UNAVAILABLE")
}

func TokenMissingError() *AppError {
	return NewAppError(
		ErrTokenMissing,
		"missing authorization token",
		http.StatusUnauthorized,
		"TOKEN_MISSING",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"invalid or malformed token",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"token has expired",
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
	)
}
