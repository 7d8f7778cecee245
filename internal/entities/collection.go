package entities

// Basis point arithmetic constants
const (
	// BasisPointDenominator is the divisor for basis point rates (100% = 10000)
	BasisPointDenominator = 10000

	// MaxRoyaltyBasisPoints caps collection royalties at 10%
	MaxRoyaltyBasisPoints = 1000
)

// Collection is a line of characters: supply accounting, mint pricing,
// royalty terms, and the treasury that absorbs mint payments.
type Collection struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Creator            string `json:"creator"`
	RoyaltyBasisPoints int64  `json:"royalty_basis_points"`
	RoyaltyRecipient   string `json:"royalty_recipient"`
	TotalSupply        int64  `json:"total_supply"`
	MaxSupply          *int64 `json:"max_supply,omitempty"` // nil = uncapped
	MintPrice          int64  `json:"mint_price"`
	PublicMint         bool   `json:"public_mint"`
	Treasury           int64  `json:"treasury"`
	CreatedAt          int64  `json:"created_at"`
	UpdatedAt          int64  `json:"updated_at"`
}

// SupplyAvailable reports whether another character may be minted
func (c *Collection) SupplyAvailable() bool {
	return c.MaxSupply == nil || c.TotalSupply < *c.MaxSupply
}

// CanMint reports whether the given principal is allowed to mint. Anyone may
// mint when public minting is enabled; otherwise only the creator.
func (c *Collection) CanMint(minter string) bool {
	return c.PublicMint || minter == c.Creator
}
