package handlers

import (
	"github.com/gofiber/fiber/v2"

	"offers/internal/domain"
	applog "offers/internal/log"
	"offers/internal/services"
	"offers/internal/validate"
)

type OfferHandler struct {
	Offers *services.OfferService
}

// GET /offers?status=
func (h *OfferHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	offers, err := h.Offers.List(c.UserContext(), status)
	if err != nil {
		return writeError(c, "offers.list", err)
	}
	return c.JSON(domain.OffersOut(offers))
}

// POST /offers
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var in domain.OfferCreate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "offers.create", err)
	}
	o, err := h.Offers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "offers.create", err)
	}
	applog.Audit(c, "offers.create", map[string]any{"offer_id": o.PublicID, "seller_id": o.SellerID, "price": o.Price})
	return c.JSON(fiber.Map{"id": o.PublicID})
}

// GET /offers/:id
func (h *OfferHandler) Detail(c *fiber.Ctx) error {
	o, err := h.Offers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "offers.detail", err)
	}
	return c.JSON(domain.NewOfferOut(o))
}

// PUT /offers/:id
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	var in domain.OfferUpdate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "offers.update", err)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, "offers.update", err)
	}
	o, err := h.Offers.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, "offers.update", err)
	}
	applog.Audit(c, "offers.update", map[string]any{"offer_id": o.PublicID, "status": o.Status})
	return c.JSON(fiber.Map{"message": "updated", "id": o.PublicID})
}

// DELETE /offers/:id
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Offers.Delete(c.UserContext(), id); err != nil {
		return writeError(c, "offers.delete", err)
	}
	applog.Audit(c, "offers.delete", map[string]any{"offer_id": id})
	return c.JSON(fiber.Map{"message": "deleted"})
}

// GET /offers/search?query=
func (h *OfferHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Query(c.Query("query"))
	if !ok {
		return writeError(c, "offers.search", domain.Invalid("query", "must be 1-255 characters"))
	}
	offers, err := h.Offers.Search(c.UserContext(), q)
	if err != nil {
		return writeError(c, "offers.search", err)
	}
	return c.JSON(domain.OffersOut(offers))
}

// POST /offers/:id/bid
func (h *OfferHandler) Bid(c *fiber.Ctx) error {
	var in domain.BidCreate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "offers.bid", err)
	}
	tx, err := h.Offers.Bid(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, "offers.bid", err)
	}
	applog.Audit(c, "offers.bid", map[string]any{
		"tx_hash":   tx.TxHash,
		"buyer_id":  tx.BuyerID,
		"seller_id": tx.SellerID,
		"amount":    tx.Amount,
	})
	return c.JSON(fiber.Map{"tx_id": tx.TxHash})
}

// GET /offers/:id/bids
func (h *OfferHandler) Bids(c *fiber.Ctx) error {
	txs, err := h.Offers.Bids(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "offers.bids", err)
	}
	return c.JSON(domain.TransactionsOut(txs))
}

// GET /offers/history?user_id=
func (h *OfferHandler) History(c *fiber.Ctx) error {
	userID, ok := validate.UserID(c.Query("user_id"))
	if !ok {
		return writeError(c, "offers.history", domain.Invalid("user_id", "must be a non-negative integer"))
	}
	txs, err := h.Offers.History(c.UserContext(), userID)
	if err != nil {
		return writeError(c, "offers.history", err)
	}
	return c.JSON(domain.TransactionsOut(txs))
}
