// Package errors provides structured error handling for the collectibles
// service.
//
// Every error carries a Code identifying the outcome. Generic codes
// (INVALID_ARGUMENT, NOT_FOUND, ALREADY_EXISTS, INTERNAL) are used by the
// storage and validation layers; domain codes (SUPPLY_EXCEEDED,
// INSUFFICIENT_PAYMENT, DUPLICATE_LISTING, ...) name the failure modes of the
// minting, equipment, and marketplace engines. Codes map onto gRPC status
// codes and HTTP statuses for the serving layer.
//
// Use the per-code constructors and Is* helpers rather than comparing codes
// directly:
//
//	if err := svc.MintCharacter(ctx, input); errors.IsSupplyExceeded(err) {
//		// cap reached, nothing minted
//	}
package errors
