package repos

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/blake2b"

	"offers/internal/domain"
	"offers/internal/validate"
)

const txCols = `id, offer_id, buyer_id, seller_id, amount, status, tx_hash, created_at`

type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// CreateBid records a pending bid on o. The seller is snapshotted from the
// offer; nothing about the offer itself changes.
func (r *TransactionRepo) CreateBid(ctx context.Context, o domain.Offer, amount float64, buyerID int64) (domain.Transaction, error) {
	if !validate.Amount(amount) {
		return domain.Transaction{}, domain.Invalid("bid", "must be greater than 0")
	}
	if !validate.PartyID(buyerID) {
		return domain.Transaction{}, domain.Invalid("buyer_id", "must be 0 or a positive id")
	}
	t := domain.Transaction{
		OfferID:   o.ID,
		BuyerID:   buyerID,
		SellerID:  o.SellerID,
		Amount:    amount,
		Status:    domain.StatusPending,
		TxHash:    newTxHash(o.PublicID),
		CreatedAt: domain.Now(),
	}
	err := r.db.GetContext(ctx, &t.ID, r.db.Rebind(`
	  INSERT INTO transactions(offer_id, buyer_id, seller_id, amount, status, tx_hash, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?)
	  RETURNING id
	`), t.OfferID, t.BuyerID, t.SellerID, t.Amount, t.Status, t.TxHash, t.CreatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

// UserHistory lists every transaction where userID is buyer or seller,
// newest first.
func (r *TransactionRepo) UserHistory(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT `+txCols+`
	  FROM transactions
	  WHERE buyer_id = ? OR seller_id = ?
	  ORDER BY created_at DESC, id DESC
	`), userID, userID)
	return out, err
}

// ListByOffer lists the bids placed on one offer, newest first.
func (r *TransactionRepo) ListByOffer(ctx context.Context, offerID int64) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT `+txCols+`
	  FROM transactions
	  WHERE offer_id = ?
	  ORDER BY created_at DESC, id DESC
	`), offerID)
	return out, err
}

// newTxHash derives the opaque settlement reference: 64 hex chars from a
// random nonce bound to the offer.
func newTxHash(offerPublicID string) string {
	nonce := uuid.New()
	sum := blake2b.Sum256(append(nonce[:], offerPublicID...))
	return hex.EncodeToString(sum[:])
}
