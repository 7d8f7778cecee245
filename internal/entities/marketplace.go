package entities

// Marketplace escrows accessories for sale against one collection and keeps
// the cumulative trade statistics. The Listings map is keyed by the escrowed
// accessory's ID; every key matches the ID of the item inside its Listing.
type Marketplace struct {
	ID             string              `json:"id"`
	CollectionID   string              `json:"collection_id"`
	Active         bool                `json:"active"`
	Listings       map[string]*Listing `json:"listings,omitempty"`
	TotalVolume    int64               `json:"total_volume"`
	TotalSales     int64               `json:"total_sales"`
	FeeBasisPoints int64               `json:"fee_basis_points"`
	FeeRecipient   string              `json:"fee_recipient"`
	CreatedAt      int64               `json:"created_at"`
	UpdatedAt      int64               `json:"updated_at"`
}

// Listing is an escrow record: the held item, who listed it, the ask price,
// and when. It exists from ListAccessory until purchase or cancellation.
type Listing struct {
	Item     *AccessoryItem `json:"item"`
	Seller   string         `json:"seller"`
	Price    int64          `json:"price"`
	ListedAt int64          `json:"listed_at"` // unix millis
}

// Listing returns the escrow entry for the given accessory ID, or nil
func (m *Marketplace) Listing(accessoryID string) *Listing {
	if m.Listings == nil {
		return nil
	}
	return m.Listings[accessoryID]
}
