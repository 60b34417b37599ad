// Package apperr описывает виды ошибок, которые видит HTTP-слой
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrAuth       = errors.New("authentication failed")
	ErrValidation = errors.New("validation failed")
	ErrPolicy     = errors.New("media policy violation")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrData       = errors.New("data store error")
)

// ErrorKind - тег ошибки для ответа клиенту
type ErrorKind string

const (
	KindAuth       ErrorKind = "auth"
	KindValidation ErrorKind = "validation"
	KindPolicy     ErrorKind = "policy"
	KindNotFound   ErrorKind = "not_found"
	KindForbidden  ErrorKind = "forbidden"
	KindData       ErrorKind = "data"
	KindInternal   ErrorKind = "internal"
)

// Kind определяет тег по цепочке обернутых ошибок
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPolicy):
		return KindPolicy
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrAuth):
		return KindAuth
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrData):
		return KindData
	default:
		return KindInternal
	}
}

// Error - ошибка с тегом и сообщением, которое можно отдать клиенту
type Error struct {
	kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.kind.Error() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

func (e *Error) PublicMessage() string {
	return e.Msg
}

// Public возвращает текст для ответа клиенту без цепочки оберток.
// Для внутренних ошибок детали не раскрываются.
func Public(err error) string {
	var pe interface{ PublicMessage() string }
	if errors.As(err, &pe) {
		return pe.PublicMessage()
	}
	switch Kind(err) {
	case KindInternal, KindData:
		return "internal server error"
	default:
		return err.Error()
	}
}

// Validation оборачивает сообщение в ErrValidation
func Validation(format string, args ...any) error {
	return &Error{kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound оборачивает сообщение в ErrNotFound
func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden оборачивает сообщение в ErrForbidden
func Forbidden(format string, args ...any) error {
	return &Error{kind: ErrForbidden, Msg: fmt.Sprintf(format, args...)}
}
