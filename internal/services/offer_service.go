package services

import (
	"context"

	"offers/internal/domain"
	"offers/internal/repos"
	"offers/internal/validate"
)

// OfferService applies the marketplace rules on top of the repositories.
// Offers are always addressed by public id here.
type OfferService struct {
	Offers *repos.OfferRepo
	Txs    *repos.TransactionRepo
}

func NewOfferService(offers *repos.OfferRepo, txs *repos.TransactionRepo) *OfferService {
	return &OfferService{Offers: offers, Txs: txs}
}

func (s *OfferService) Create(ctx context.Context, in domain.OfferCreate) (domain.Offer, error) {
	if err := in.Validate(); err != nil {
		return domain.Offer{}, err
	}
	return s.Offers.Create(ctx, in.Title, in.Description, in.Price, in.SellerID.TakeOr(0))
}

// Get resolves a public id. Ids that cannot name an offer are reported as
// not found rather than as validation errors.
func (s *OfferService) Get(ctx context.Context, publicID string) (domain.Offer, error) {
	id, ok := validate.PublicID(publicID)
	if !ok {
		return domain.Offer{}, domain.ErrNotFound
	}
	return s.Offers.GetByPublicID(ctx, id)
}

func (s *OfferService) List(ctx context.Context, status string) ([]domain.Offer, error) {
	return s.Offers.List(ctx, status)
}

func (s *OfferService) Search(ctx context.Context, q string) ([]domain.Offer, error) {
	return s.Offers.Search(ctx, q)
}

func (s *OfferService) Update(ctx context.Context, publicID string, upd domain.OfferUpdate) (domain.Offer, error) {
	o, err := s.Get(ctx, publicID)
	if err != nil {
		return domain.Offer{}, err
	}
	return s.Offers.UpdateFields(ctx, o, upd)
}

func (s *OfferService) Delete(ctx context.Context, publicID string) error {
	o, err := s.Get(ctx, publicID)
	if err != nil {
		return err
	}
	return s.Offers.Delete(ctx, o)
}

// Bid places a pending bid. A buyer may not bid on their own offer; id 0
// means "unknown" on either side and never counts as a match.
// Concurrent bids on one offer are all accepted.
func (s *OfferService) Bid(ctx context.Context, publicID string, in domain.BidCreate) (domain.Transaction, error) {
	if err := in.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	o, err := s.Get(ctx, publicID)
	if err != nil {
		return domain.Transaction{}, err
	}
	buyerID := in.BuyerID.TakeOr(0)
	if buyerID != 0 && o.SellerID != 0 && buyerID == o.SellerID {
		return domain.Transaction{}, domain.ErrSelfTrade
	}
	return s.Txs.CreateBid(ctx, o, in.Bid, buyerID)
}

func (s *OfferService) History(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	if userID < 0 {
		return nil, domain.Invalid("user_id", "must be a non-negative integer")
	}
	return s.Txs.UserHistory(ctx, userID)
}

// Bids lists the transactions recorded against one offer.
func (s *OfferService) Bids(ctx context.Context, publicID string) ([]domain.Transaction, error) {
	o, err := s.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.Txs.ListByOffer(ctx, o.ID)
}
