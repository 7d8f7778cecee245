package entities

// Payment is the fungible value tendered with a mint or purchase. Operations
// that consume a payment verify Value() against the required amount and then
// fully account for it: absorbed into a treasury, split into payouts, or
// burned.
type Payment struct {
	amount int64
}

// NewPayment creates a payment carrying the given amount. Negative amounts
// clamp to zero.
func NewPayment(amount int64) Payment {
	if amount < 0 {
		amount = 0
	}
	return Payment{amount: amount}
}

// Value returns the amount the payment carries
func (p Payment) Value() int64 {
	return p.amount
}

// Payout records value forwarded to a recipient when a payment is split or a
// treasury is drawn down.
type Payout struct {
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}
