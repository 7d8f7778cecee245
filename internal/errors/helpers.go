package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsNotAuthorized checks if an error is a not authorized error
func IsNotAuthorized(err error) bool {
	return GetCode(err) == CodeNotAuthorized
}

// IsInvalidAccessoryType checks if an error is an invalid accessory type error
func IsInvalidAccessoryType(err error) bool {
	return GetCode(err) == CodeInvalidAccessoryType
}

// IsInvalidRoyalty checks if an error is an invalid royalty error
func IsInvalidRoyalty(err error) bool {
	return GetCode(err) == CodeInvalidRoyalty
}

// IsInsufficientPayment checks if an error is an insufficient payment error
func IsInsufficientPayment(err error) bool {
	return GetCode(err) == CodeInsufficientPayment
}

// IsInsufficientFunds checks if an error is an insufficient funds error
func IsInsufficientFunds(err error) bool {
	return GetCode(err) == CodeInsufficientFunds
}

// IsSupplyExceeded checks if an error is a supply exceeded error
func IsSupplyExceeded(err error) bool {
	return GetCode(err) == CodeSupplyExceeded
}

// IsTemplateInactive checks if an error is a template inactive error
func IsTemplateInactive(err error) bool {
	return GetCode(err) == CodeTemplateInactive
}

// IsListingNotFound checks if an error is a listing not found error
func IsListingNotFound(err error) bool {
	return GetCode(err) == CodeListingNotFound
}

// IsSlotNotEquipped checks if an error is a slot not equipped error
func IsSlotNotEquipped(err error) bool {
	return GetCode(err) == CodeSlotNotEquipped
}

// IsMarketplacePaused checks if an error is a marketplace paused error
func IsMarketplacePaused(err error) bool {
	return GetCode(err) == CodeMarketplacePaused
}

// IsDuplicateListing checks if an error is a duplicate listing error
func IsDuplicateListing(err error) bool {
	return GetCode(err) == CodeDuplicateListing
}
