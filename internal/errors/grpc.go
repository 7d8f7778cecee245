package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Check if it's already a gRPC status error
	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if As(err, &customErr) {
		return status.Error(customErr.Code.GRPCCode(), customErr.Message)
	}

	return status.Error(codes.Internal, err.Error())
}

// GRPCCode returns the corresponding gRPC code
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeOK:
		return codes.OK
	case CodeInvalidArgument, CodeInvalidAccessoryType, CodeInvalidRoyalty:
		return codes.InvalidArgument
	case CodeNotFound, CodeListingNotFound, CodeSlotNotEquipped:
		return codes.NotFound
	case CodeAlreadyExists, CodeDuplicateListing:
		return codes.AlreadyExists
	case CodeNotAuthorized:
		return codes.PermissionDenied
	case CodeSupplyExceeded:
		return codes.ResourceExhausted
	case CodeInsufficientPayment, CodeInsufficientFunds, CodeTemplateInactive, CodeMarketplacePaused:
		return codes.FailedPrecondition
	case CodeUnavailable:
		return codes.Unavailable
	case CodeInternal:
		return codes.Internal
	default:
		return codes.Internal
	}
}
