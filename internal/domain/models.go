package domain

import "time"

const (
	StatusOpen    = "open"
	StatusPending = "pending"
)

// TimeLayout is fixed-width UTC so that stored timestamps sort lexically
// in creation order on every dialect.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

func Now() string { return time.Now().UTC().Format(TimeLayout) }

// Offer is a seller listing. ID is the storage key and never leaves the
// service; callers address offers by PublicID.
type Offer struct {
	ID          int64   `db:"id"`
	PublicID    string  `db:"public_id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	SellerID    int64   `db:"seller_id"`
	Status      string  `db:"status"`
	CreatedAt   string  `db:"created_at"`
}

// Transaction records a single bid. SellerID is copied from the offer when
// the bid is placed.
type Transaction struct {
	ID        int64   `db:"id"`
	OfferID   int64   `db:"offer_id"`
	BuyerID   int64   `db:"buyer_id"`
	SellerID  int64   `db:"seller_id"`
	Amount    float64 `db:"amount"`
	Status    string  `db:"status"`
	TxHash    string  `db:"tx_hash"`
	CreatedAt string  `db:"created_at"`
}
