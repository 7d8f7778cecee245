package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelforge/collectibles-api/internal/errors"
)

func TestErrorMessage(t *testing.T) {
	err := errors.SupplyExceeded("cap reached")
	assert.Equal(t, "SUPPLY_EXCEEDED: cap reached", err.Error())

	wrapped := errors.Wrap(stderrors.New("boom"), "mint failed")
	assert.Equal(t, errors.CodeInternal, wrapped.Code)
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestWrapPreservesCode(t *testing.T) {
	base := errors.ListingNotFound("no listing for accessory acc_1")
	wrapped := errors.Wrap(base, "purchase failed")

	assert.Equal(t, errors.CodeListingNotFound, wrapped.Code)
	assert.True(t, errors.IsListingNotFound(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestCodeHelpers(t *testing.T) {
	cases := []struct {
		err   error
		check func(error) bool
	}{
		{errors.NotAuthorized("nope"), errors.IsNotAuthorized},
		{errors.InvalidAccessoryType("bad type"), errors.IsInvalidAccessoryType},
		{errors.InvalidRoyalty("too high"), errors.IsInvalidRoyalty},
		{errors.InsufficientPayment("short"), errors.IsInsufficientPayment},
		{errors.InsufficientFunds("short"), errors.IsInsufficientFunds},
		{errors.SupplyExceeded("cap"), errors.IsSupplyExceeded},
		{errors.TemplateInactive("off"), errors.IsTemplateInactive},
		{errors.ListingNotFound("miss"), errors.IsListingNotFound},
		{errors.SlotNotEquipped("empty"), errors.IsSlotNotEquipped},
		{errors.MarketplacePaused("paused"), errors.IsMarketplacePaused},
		{errors.DuplicateListing("dup"), errors.IsDuplicateListing},
		{errors.NotFound("miss"), errors.IsNotFound},
		{errors.AlreadyExists("dup"), errors.IsAlreadyExists},
		{errors.InvalidArgument("bad"), errors.IsInvalidArgument},
	}

	for _, tc := range cases {
		assert.True(t, tc.check(tc.err), "helper mismatch for %v", tc.err)
	}

	// nil and foreign errors
	assert.False(t, errors.IsNotFound(nil))
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
}

func TestValidationBuilder(t *testing.T) {
	err := errors.NewValidationBuilder().Build()
	assert.NoError(t, err)

	err = errors.NewValidationBuilder().
		RequiredField("CollectionRepo").
		Field("FeeBasisPoints", "cannot be negative").
		Build()
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "CollectionRepo")
}
