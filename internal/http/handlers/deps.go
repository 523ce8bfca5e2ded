package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"offers/internal/repos"
	"offers/internal/services"
)

type Deps struct {
	OfferHandler *OfferHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	offerRepo := repos.NewOfferRepo(db)
	txRepo := repos.NewTransactionRepo(db)

	offerSvc := services.NewOfferService(offerRepo, txRepo)

	return &Deps{
		OfferHandler: &OfferHandler{Offers: offerSvc},
	}
}

// Routes mounts the API. The fixed /offers/search and /offers/history paths
// are registered ahead of /offers/:id so they are not taken as ids.
func (d *Deps) Routes(r fiber.Router) {
	h := d.OfferHandler

	r.Get("/health", Health)
	r.Get("/healthz", Health)

	r.Get("/offers", h.List)
	r.Post("/offers", h.Create)
	r.Get("/offers/search", h.Search)
	r.Get("/offers/history", h.History)
	r.Get("/offers/:id", h.Detail)
	r.Put("/offers/:id", h.Update)
	r.Delete("/offers/:id", h.Delete)
	r.Post("/offers/:id/bid", h.Bid)
	r.Get("/offers/:id/bids", h.Bids)
}
