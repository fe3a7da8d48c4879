package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError so callers can branch without inspecting text.
type Kind int

const (
	// KindUnknown is reported for errors that are not an AppError.
	KindUnknown Kind = iota
	// KindInvalidAmount: the amount is malformed or not positive after rounding.
	KindInvalidAmount
	// KindInsufficientFunds: a withdrawal exceeds the balance.
	KindInsufficientFunds
	// KindInvalidInput: a command line could not be read as a command.
	KindInvalidInput
	// KindInternal: an unexpected failure.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindInvalidInput:
		return "invalid_input"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError is a structured, recoverable error raised by the ledger.
type AppError struct {
	Code    string
	Message string
	Kind    Kind
	Err     error // Wrapped cause (e.g. a parse failure)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, ErrInsufficientFunds()) matches any insufficient funds error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string, kind Kind) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// Wrap wraps an underlying error with an AppError.
func Wrap(code string, message string, kind Kind, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
		Err:     err,
	}
}

// KindOf returns the Kind of the first AppError in err's chain,
// or KindUnknown when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// ---- Account (ACC) ----

func ErrInvalidAmount() *AppError {
	return New("ACC_001", "Invalid amount", KindInvalidAmount)
}

// InvalidAmount returns an ACC_001 error with a specific message.
func InvalidAmount(message string) *AppError {
	return New("ACC_001", message, KindInvalidAmount)
}

// WrapInvalidAmount returns an ACC_001 error carrying the underlying cause.
func WrapInvalidAmount(message string, err error) *AppError {
	return Wrap("ACC_001", message, KindInvalidAmount, err)
}

func ErrInsufficientFunds() *AppError {
	return New("ACC_002", "Insufficient funds", KindInsufficientFunds)
}

// ---- Command input (CMD) ----

func ErrLineTooLong() *AppError {
	return New("CMD_001", "Line too long", KindInvalidInput)
}

// ---- System (SYS) ----

// InternalError wraps an unexpected error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal error", KindInternal, err)
}
