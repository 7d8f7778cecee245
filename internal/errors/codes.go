package errors

import "net/http"

// Code represents an error code
type Code string

// Error codes. The first block is generic plumbing used by the storage and
// validation layers; the second block carries the domain outcomes the
// orchestrators report.
const (
	CodeOK              Code = "OK"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeInternal        Code = "INTERNAL"
	CodeUnavailable     Code = "UNAVAILABLE"

	CodeNotAuthorized        Code = "NOT_AUTHORIZED"
	CodeInvalidAccessoryType Code = "INVALID_ACCESSORY_TYPE"
	CodeInvalidRoyalty       Code = "INVALID_ROYALTY"
	CodeInsufficientPayment  Code = "INSUFFICIENT_PAYMENT"
	CodeInsufficientFunds    Code = "INSUFFICIENT_FUNDS"
	CodeSupplyExceeded       Code = "SUPPLY_EXCEEDED"
	CodeTemplateInactive     Code = "TEMPLATE_INACTIVE"
	CodeListingNotFound      Code = "LISTING_NOT_FOUND"
	CodeSlotNotEquipped      Code = "SLOT_NOT_EQUIPPED"
	CodeMarketplacePaused    Code = "MARKETPLACE_PAUSED"
	CodeDuplicateListing     Code = "DUPLICATE_LISTING"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument, CodeInvalidAccessoryType, CodeInvalidRoyalty:
		return http.StatusBadRequest
	case CodeNotFound, CodeListingNotFound, CodeSlotNotEquipped:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeDuplicateListing, CodeSupplyExceeded:
		return http.StatusConflict
	case CodeNotAuthorized:
		return http.StatusForbidden
	case CodeInsufficientPayment, CodeInsufficientFunds:
		return http.StatusPaymentRequired
	case CodeTemplateInactive, CodeMarketplacePaused:
		return http.StatusPreconditionFailed
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
