package domain

import (
	"github.com/moznion/go-optional"

	"offers/internal/validate"
)

// ---------- Inputs ----------

type OfferCreate struct {
	Title       string                 `json:"title"`
	Description string                 `json:"desc"`
	Price       float64                `json:"price"`
	SellerID    optional.Option[int64] `json:"seller_id"`
}

// Validate normalizes text fields in place.
func (in *OfferCreate) Validate() error {
	t, ok := validate.Title(in.Title)
	if !ok {
		return Invalid("title", "must be 1-255 characters")
	}
	d, ok := validate.Description(in.Description)
	if !ok {
		return Invalid("desc", "must be 1-2048 characters")
	}
	if !validate.Amount(in.Price) {
		return Invalid("price", "must be greater than 0")
	}
	if !validate.PartyID(in.SellerID.TakeOr(0)) {
		return Invalid("seller_id", "must be 0 or a positive id")
	}
	in.Title, in.Description = t, d
	return nil
}

// OfferUpdate is a partial update: only fields that are Some are applied.
// No rule requires any field to be present.
type OfferUpdate struct {
	Title       optional.Option[string]  `json:"title"`
	Description optional.Option[string]  `json:"desc"`
	Price       optional.Option[float64] `json:"price"`
	Status      optional.Option[string]  `json:"status"`
}

func (in OfferUpdate) Validate() error {
	_, err := in.Apply(Offer{})
	return err
}

// Apply returns o with the provided fields replaced.
func (in OfferUpdate) Apply(o Offer) (Offer, error) {
	if v, err := in.Title.Take(); err == nil {
		t, ok := validate.Title(v)
		if !ok {
			return o, Invalid("title", "must be 1-255 characters")
		}
		o.Title = t
	}
	if v, err := in.Description.Take(); err == nil {
		d, ok := validate.Description(v)
		if !ok {
			return o, Invalid("desc", "must be 1-2048 characters")
		}
		o.Description = d
	}
	if v, err := in.Price.Take(); err == nil {
		if !validate.Amount(v) {
			return o, Invalid("price", "must be greater than 0")
		}
		o.Price = v
	}
	if v, err := in.Status.Take(); err == nil {
		s, ok := validate.Status(v)
		if !ok {
			return o, Invalid("status", "must be 1-32 characters")
		}
		o.Status = s
	}
	return o, nil
}

type BidCreate struct {
	Bid     float64                `json:"bid"`
	BuyerID optional.Option[int64] `json:"buyer_id"`
}

func (in BidCreate) Validate() error {
	if !validate.Amount(in.Bid) {
		return Invalid("bid", "must be greater than 0")
	}
	if !validate.PartyID(in.BuyerID.TakeOr(0)) {
		return Invalid("buyer_id", "must be 0 or a positive id")
	}
	return nil
}

// ---------- Outputs ----------

// OfferOut is the external shape of an Offer; the public id is its only id.
type OfferOut struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"desc"`
	Price       float64 `json:"price"`
	SellerID    int64   `json:"seller_id"`
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
}

func NewOfferOut(o Offer) OfferOut {
	return OfferOut{
		ID:          o.PublicID,
		Title:       o.Title,
		Description: o.Description,
		Price:       o.Price,
		SellerID:    o.SellerID,
		Status:      o.Status,
		Timestamp:   o.CreatedAt,
	}
}

func OffersOut(in []Offer) []OfferOut {
	out := make([]OfferOut, 0, len(in))
	for _, o := range in {
		out = append(out, NewOfferOut(o))
	}
	return out
}

type TransactionOut struct {
	ID        int64   `json:"id"`
	OfferID   int64   `json:"offer_id"`
	BuyerID   int64   `json:"buyer_id"`
	SellerID  int64   `json:"seller_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	TxHash    string  `json:"tx_hash"`
	CreatedAt string  `json:"created_at"`
}

func NewTransactionOut(t Transaction) TransactionOut {
	return TransactionOut(t)
}

func TransactionsOut(in []Transaction) []TransactionOut {
	out := make([]TransactionOut, 0, len(in))
	for _, t := range in {
		out = append(out, NewTransactionOut(t))
	}
	return out
}
