package inverter

import (
	"errors"
	"fmt"

	"github.com/danpasecinic/inverter/internal/container"
	"github.com/danpasecinic/inverter/internal/token"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotProvided
	ErrCodeCyclicDependency
	ErrCodeModifierViolation
	ErrCodeTypeMismatch
	ErrCodeInvalidToken
	ErrCodeInvalidProvider
	ErrCodeUnknownExtension
	ErrCodeValidationFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:           "UNKNOWN",
	ErrCodeNotProvided:       "TOKEN_NOT_PROVIDED",
	ErrCodeCyclicDependency:  "CYCLIC_DEPENDENCY",
	ErrCodeModifierViolation: "TOKEN_MODIFIER_VIOLATION",
	ErrCodeTypeMismatch:      "TYPE_MISMATCH",
	ErrCodeInvalidToken:      "INVALID_TOKEN",
	ErrCodeInvalidProvider:   "INVALID_PROVIDER",
	ErrCodeUnknownExtension:  "UNKNOWN_EXTENSION",
	ErrCodeValidationFailed:  "VALIDATION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is returned by every container operation except a failing factory,
// whose error is passed through unchanged. Token is the description of the
// token the error is about; Stack is the resolution stack, oldest first.
type Error struct {
	Code    ErrorCode
	Message string
	Token   string
	Cause   error
	Stack   []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// wrapError converts engine errors into *Error. Anything else, including errors
// returned by factories, is returned unchanged.
func wrapError(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *container.NotProvidedError:
		return errNotProvided(e)
	case *container.CyclicError:
		return errCyclic(e)
	case *token.ModifierError:
		return &Error{
			Code:    ErrCodeModifierViolation,
			Message: e.Error(),
			Token:   e.Key.Description(),
		}
	default:
		return err
	}
}

func errNotProvided(e *container.NotProvidedError) *Error {
	stack := container.Descriptions(e.Stack)
	return &Error{
		Code:    ErrCodeNotProvided,
		Message: e.Error(),
		Token:   stack[len(stack)-1],
		Stack:   stack,
	}
}

func errCyclic(e *container.CyclicError) *Error {
	stack := container.Descriptions(e.Stack)
	return &Error{
		Code:    ErrCodeCyclicDependency,
		Message: e.Error(),
		Token:   stack[len(stack)-1],
		Stack:   stack,
	}
}

func errInvalidToken(message string) *Error {
	return newError(ErrCodeInvalidToken, message, nil)
}

func errTypeMismatch(desc, want, got string) *Error {
	e := newError(
		ErrCodeTypeMismatch,
		fmt.Sprintf("Token %q resolved to %s, expected %s", desc, got, want),
		nil,
	)
	e.Token = desc
	return e
}

func errInvalidProvider(desc string, cause error) *Error {
	e := newError(ErrCodeInvalidProvider, fmt.Sprintf("invalid provider for token %q", desc), cause)
	e.Token = desc
	return e
}

func errUnknownExtension(module, name string) *Error {
	return newError(
		ErrCodeUnknownExtension,
		fmt.Sprintf("module %q has no extension %q", module, name),
		nil,
	)
}

func errValidationFailed(cause error) *Error {
	return newError(ErrCodeValidationFailed, "container validation failed", cause)
}

func IsNotProvided(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotProvided
}

func IsCyclicDependency(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeCyclicDependency
}

func IsModifierViolation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeModifierViolation
}

func IsTypeMismatch(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTypeMismatch
}

func IsInvalidToken(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidToken
}

func IsInvalidProvider(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidProvider
}

func IsUnknownExtension(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnknownExtension
}

func IsValidationFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeValidationFailed
}
