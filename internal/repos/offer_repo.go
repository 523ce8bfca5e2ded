package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/moznion/go-optional"

	"offers/internal/domain"
)

const offerCols = `id, public_id, title, description, price, seller_id, status, created_at`

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

// Create validates and stores a new open offer with a fresh public id.
func (r *OfferRepo) Create(ctx context.Context, title, description string, price float64, sellerID int64) (domain.Offer, error) {
	in := domain.OfferCreate{Title: title, Description: description, Price: price, SellerID: optional.Some(sellerID)}
	if err := in.Validate(); err != nil {
		return domain.Offer{}, err
	}
	o := domain.Offer{
		PublicID:    uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		SellerID:    sellerID,
		Status:      domain.StatusOpen,
		CreatedAt:   domain.Now(),
	}
	err := r.db.GetContext(ctx, &o.ID, r.db.Rebind(`
	  INSERT INTO offers(public_id, title, description, price, seller_id, status, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?)
	  RETURNING id
	`), o.PublicID, o.Title, o.Description, o.Price, o.SellerID, o.Status, o.CreatedAt)
	if err != nil {
		return domain.Offer{}, err
	}
	return o, nil
}

func (r *OfferRepo) GetByPublicID(ctx context.Context, publicID string) (domain.Offer, error) {
	var o domain.Offer
	err := r.db.GetContext(ctx, &o, r.db.Rebind(`SELECT `+offerCols+` FROM offers WHERE public_id = ?`), publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Offer{}, domain.ErrNotFound
	}
	return o, err
}

// List returns offers newest first, restricted to status when it is non-empty.
func (r *OfferRepo) List(ctx context.Context, status string) ([]domain.Offer, error) {
	where := `1 = 1`
	args := []any{}
	if status != "" {
		where += ` AND status = ?`
		args = append(args, status)
	}
	out := []domain.Offer{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT `+offerCols+`
	  FROM offers
	  WHERE `+where+`
	  ORDER BY created_at DESC, id DESC
	`), args...)
	return out, err
}

// Search matches q case-insensitively as a substring of title or
// description. An empty q matches nothing.
func (r *OfferRepo) Search(ctx context.Context, q string) ([]domain.Offer, error) {
	out := []domain.Offer{}
	if q == "" {
		return out, nil
	}
	lower := lowerFunc(r.db)
	pattern := "%" + escapeLike(q) + "%"
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT `+offerCols+`
	  FROM offers
	  WHERE `+lower+`(title) LIKE `+lower+`(CAST(? AS TEXT)) ESCAPE '\'
	     OR `+lower+`(description) LIKE `+lower+`(CAST(? AS TEXT)) ESCAPE '\'
	  ORDER BY created_at DESC, id DESC
	`), pattern, pattern)
	return out, err
}

// UpdateFields applies the provided fields of upd to o and persists them.
// Fields absent from upd keep their stored values.
func (r *OfferRepo) UpdateFields(ctx context.Context, o domain.Offer, upd domain.OfferUpdate) (domain.Offer, error) {
	next, err := upd.Apply(o)
	if err != nil {
		return o, err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE offers
	  SET title = ?, description = ?, price = ?, status = ?
	  WHERE id = ?
	`), next.Title, next.Description, next.Price, next.Status, next.ID)
	if err != nil {
		return o, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return o, domain.ErrNotFound
	}
	return next, nil
}

// Delete removes the offer row. Transactions that reference it are kept.
func (r *OfferRepo) Delete(ctx context.Context, o domain.Offer) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM offers WHERE id = ?`), o.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
