package errors

import (
	stderrors "errors"
	"fmt"
)

type AppError struct {
	Code    string
	Entity  string
	ID      uint
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound reports a missing film, user or like. Callers rely on Entity
// to tell a missing film from a missing user.
func NotFound(entity string, id uint) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %d not found", entity, id),
	}
}

func Invalid(message string) *AppError {
	return New(ErrCodeInvalidArgument, message)
}

// Common error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Entity tags carried by NOT_FOUND errors
const (
	EntityFilm = "film"
	EntityUser = "user"
	EntityLike = "like"
)

// CodeOf returns the code of the outermost AppError in err's chain,
// or ErrCodeInternalError for foreign errors.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// EntityOf returns the entity tag of a NOT_FOUND error, or "".
func EntityOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Entity
	}
	return ""
}

func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeNotFound
}

func IsInvalid(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeInvalidArgument
}

func IsConflict(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeConflict
}
