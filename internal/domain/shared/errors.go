package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrMissingExchangeRate) matches any message variant.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return NewDomainError(code, fmt.Sprintf(format, args...))
}

// Error codes raised by the balance engine
const (
	CodeMissingExchangeRate = "MISSING_EXCHANGE_RATE"
	CodeInvalidCommand      = "INVALID_COMMAND"
	CodeUnreachableCodePath = "UNREACHABLE_CODE_PATH"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrMissingExchangeRate = NewDomainError(CodeMissingExchangeRate, "Exchange rate not found")
	ErrInvalidCommand      = NewDomainError(CodeInvalidCommand, "Invalid trial balance command")
	ErrUnreachableCodePath = NewDomainError(CodeUnreachableCodePath, "Unreachable code path")
)

// MissingExchangeRate builds the error returned when a currency present in the
// data has no exchange rate for the requested valuation.
func MissingExchangeRate(currency string) *DomainError {
	return NewDomainErrorf(CodeMissingExchangeRate, "no exchange rate for currency %s", currency)
}

// InvalidCommand builds a precondition violation error.
func InvalidCommand(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeInvalidCommand, format, args...)
}

// UnreachableCodePath signals an enumerated combination that has no handler.
func UnreachableCodePath(format string, args ...any) *DomainError {
	return NewDomainErrorf(CodeUnreachableCodePath, format, args...)
}
