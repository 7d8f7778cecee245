package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with code, message, and metadata
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the target error carries the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error, preserving its code if it's an Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Message: message,
			Cause:   err,
			Meta:    existingErr.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Constructor functions, one per code the callers report

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a not found error with formatted message
func NotFoundf(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}

// AlreadyExists creates an already exists error
func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

// AlreadyExistsf creates an already exists error with formatted message
func AlreadyExistsf(format string, args ...interface{}) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...interface{}) *Error {
	return Newf(CodeInternal, format, args...)
}

// NotAuthorized creates a not authorized error
func NotAuthorized(message string) *Error {
	return New(CodeNotAuthorized, message)
}

// NotAuthorizedf creates a not authorized error with formatted message
func NotAuthorizedf(format string, args ...interface{}) *Error {
	return Newf(CodeNotAuthorized, format, args...)
}

// InvalidAccessoryType creates an invalid accessory type error
func InvalidAccessoryType(message string) *Error {
	return New(CodeInvalidAccessoryType, message)
}

// InvalidAccessoryTypef creates an invalid accessory type error with formatted message
func InvalidAccessoryTypef(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidAccessoryType, format, args...)
}

// InvalidRoyalty creates an invalid royalty error
func InvalidRoyalty(message string) *Error {
	return New(CodeInvalidRoyalty, message)
}

// InvalidRoyaltyf creates an invalid royalty error with formatted message
func InvalidRoyaltyf(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidRoyalty, format, args...)
}

// InsufficientPayment creates an insufficient payment error
func InsufficientPayment(message string) *Error {
	return New(CodeInsufficientPayment, message)
}

// InsufficientPaymentf creates an insufficient payment error with formatted message
func InsufficientPaymentf(format string, args ...interface{}) *Error {
	return Newf(CodeInsufficientPayment, format, args...)
}

// InsufficientFunds creates an insufficient funds error
func InsufficientFunds(message string) *Error {
	return New(CodeInsufficientFunds, message)
}

// InsufficientFundsf creates an insufficient funds error with formatted message
func InsufficientFundsf(format string, args ...interface{}) *Error {
	return Newf(CodeInsufficientFunds, format, args...)
}

// SupplyExceeded creates a supply exceeded error
func SupplyExceeded(message string) *Error {
	return New(CodeSupplyExceeded, message)
}

// SupplyExceededf creates a supply exceeded error with formatted message
func SupplyExceededf(format string, args ...interface{}) *Error {
	return Newf(CodeSupplyExceeded, format, args...)
}

// TemplateInactive creates a template inactive error
func TemplateInactive(message string) *Error {
	return New(CodeTemplateInactive, message)
}

// TemplateInactivef creates a template inactive error with formatted message
func TemplateInactivef(format string, args ...interface{}) *Error {
	return Newf(CodeTemplateInactive, format, args...)
}

// ListingNotFound creates a listing not found error
func ListingNotFound(message string) *Error {
	return New(CodeListingNotFound, message)
}

// ListingNotFoundf creates a listing not found error with formatted message
func ListingNotFoundf(format string, args ...interface{}) *Error {
	return Newf(CodeListingNotFound, format, args...)
}

// SlotNotEquipped creates a slot not equipped error
func SlotNotEquipped(message string) *Error {
	return New(CodeSlotNotEquipped, message)
}

// SlotNotEquippedf creates a slot not equipped error with formatted message
func SlotNotEquippedf(format string, args ...interface{}) *Error {
	return Newf(CodeSlotNotEquipped, format, args...)
}

// MarketplacePaused creates a marketplace paused error
func MarketplacePaused(message string) *Error {
	return New(CodeMarketplacePaused, message)
}

// MarketplacePausedf creates a marketplace paused error with formatted message
func MarketplacePausedf(format string, args ...interface{}) *Error {
	return Newf(CodeMarketplacePaused, format, args...)
}

// DuplicateListing creates a duplicate listing error
func DuplicateListing(message string) *Error {
	return New(CodeDuplicateListing, message)
}

// DuplicateListingf creates a duplicate listing error with formatted message
func DuplicateListingf(format string, args ...interface{}) *Error {
	return Newf(CodeDuplicateListing, format, args...)
}
