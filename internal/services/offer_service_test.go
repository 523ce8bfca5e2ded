package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"offers/internal/domain"
	"offers/internal/repos"
	"offers/internal/services"
)

func newService(t *testing.T) *services.OfferService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return services.NewOfferService(repos.NewOfferRepo(db), repos.NewTransactionRepo(db))
}

func create(t *testing.T, svc *services.OfferService, seller int64) domain.Offer {
	t.Helper()
	o, err := svc.Create(context.Background(), domain.OfferCreate{
		Title: "Ledger", Description: "hardware wallet", Price: 0.8, SellerID: optional.Some(seller),
	})
	require.NoError(t, err)
	return o
}

func TestCreateDefaultsSellerToZero(t *testing.T) {
	svc := newService(t)
	o, err := svc.Create(context.Background(), domain.OfferCreate{Title: "t", Description: "d", Price: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(0), o.SellerID)
	assert.Equal(t, domain.StatusOpen, o.Status)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(context.Background(), domain.OfferCreate{Title: "t", Description: "d", Price: 0})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Field)
}

func TestGetUnknownOrMalformedIDIsNotFound(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, id := range []string{"", "1", "not-a-uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"} {
		_, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
}

func TestGetIgnoresIDCase(t *testing.T) {
	svc := newService(t)
	o := create(t, svc, 1)
	got, err := svc.Get(context.Background(), "  "+strings.ToUpper(o.PublicID)+" ")
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestUpdateAndDeleteByPublicID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	o := create(t, svc, 5)

	up, err := svc.Update(ctx, o.PublicID, domain.OfferUpdate{Price: optional.Some(2.5), Status: optional.Some("reserved")})
	require.NoError(t, err)
	assert.Equal(t, 2.5, up.Price)
	assert.Equal(t, "reserved", up.Status)
	assert.Equal(t, o.Title, up.Title)
	assert.Equal(t, o.PublicID, up.PublicID)

	require.NoError(t, svc.Delete(ctx, o.PublicID))
	_, err = svc.Get(ctx, o.PublicID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, o.PublicID, domain.OfferUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, o.PublicID), domain.ErrNotFound)
}

func TestBidSelfTradeRejected(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	o := create(t, svc, 7)

	_, err := svc.Bid(ctx, o.PublicID, domain.BidCreate{Bid: 1, BuyerID: optional.Some[int64](7)})
	assert.ErrorIs(t, err, domain.ErrSelfTrade)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	bids, err := svc.Bids(ctx, o.PublicID)
	require.NoError(t, err)
	assert.Empty(t, bids)

	hist, err := svc.History(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestBidZeroIDsNeverMatch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	anonSeller := create(t, svc, 0)
	tx, err := svc.Bid(ctx, anonSeller.PublicID, domain.BidCreate{Bid: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(0), tx.BuyerID)
	assert.Equal(t, int64(0), tx.SellerID)

	known := create(t, svc, 3)
	tx, err = svc.Bid(ctx, known.PublicID, domain.BidCreate{Bid: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), tx.SellerID)
	assert.Equal(t, domain.StatusPending, tx.Status)
}

func TestBidOnMissingOffer(t *testing.T) {
	svc := newService(t)
	_, err := svc.Bid(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8", domain.BidCreate{Bid: 1, BuyerID: optional.Some[int64](2)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBidValidationBeforeLookup(t *testing.T) {
	svc := newService(t)
	_, err := svc.Bid(context.Background(), "missing", domain.BidCreate{Bid: -1})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

// Bids are not serialized per offer: every concurrent bid is recorded and
// the offer stays open.
func TestConcurrentBidsAllAccepted(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	o := create(t, svc, 1)

	const n = 16
	hashes := make([]string, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			tx, err := svc.Bid(gctx, o.PublicID, domain.BidCreate{Bid: float64(i + 1), BuyerID: optional.Some(int64(100 + i))})
			if err != nil {
				return err
			}
			hashes[i] = tx.TxHash
			return nil
		})
	}
	require.NoError(t, g.Wait())

	bids, err := svc.Bids(ctx, o.PublicID)
	require.NoError(t, err)
	assert.Len(t, bids, n)

	uniq := map[string]bool{}
	for _, h := range hashes {
		uniq[h] = true
	}
	assert.Len(t, uniq, n)

	got, err := svc.Get(ctx, o.PublicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, got.Status)
}

func TestHistory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	mine := create(t, svc, 10)
	theirs := create(t, svc, 20)
	_, err := svc.Bid(ctx, mine.PublicID, domain.BidCreate{Bid: 1, BuyerID: optional.Some[int64](30)})
	require.NoError(t, err)
	_, err = svc.Bid(ctx, theirs.PublicID, domain.BidCreate{Bid: 1, BuyerID: optional.Some[int64](10)})
	require.NoError(t, err)
	_, err = svc.Bid(ctx, theirs.PublicID, domain.BidCreate{Bid: 1, BuyerID: optional.Some[int64](40)})
	require.NoError(t, err)

	hist, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
	for _, tx := range hist {
		assert.True(t, tx.BuyerID == 10 || tx.SellerID == 10)
	}

	_, err = svc.History(ctx, -1)
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}
