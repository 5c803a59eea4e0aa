package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"magento-storefront/internal/model"
	"magento-storefront/internal/reconcile"
)

// cartResponse is returned by every cart endpoint.
type cartResponse struct {
	CartID string              `json:"cart_id,omitempty"`
	Cart   *model.CartSnapshot `json:"cart"`
}

type addItemRequest struct {
	SKU      string  `json:"sku"`
	Quantity float64 `json:"quantity"`
}

type updateItemRequest struct {
	Quantity float64 `json:"quantity"`
}

type syncCartRequest struct {
	Items []reconcile.DesiredItem `json:"items"`
}

func (h *Handler) writeCart(w http.ResponseWriter, cartID string, c *model.CartSnapshot) {
	if c == nil {
		c = &model.CartSnapshot{Items: []model.CartLineItem{}}
	}
	h.writeJSON(w, http.StatusOK, cartResponse{CartID: cartID, Cart: c})
}

// handleGetCart returns the visitor's cart, or an empty cart.
// GET /cart
func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	c, err := h.cart.Get(r.Context(), sess)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCart(w, sess.CartID(), c)
}

// handleAddItem adds a SKU, creating the cart on first use.
// POST /cart/items (JSON {sku, quantity} or form sku, quantity)
func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.FromRequest(w, r)

	var req addItemRequest
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			h.writeError(w, r, err)
			return
		}
		req.SKU = r.PostForm.Get("sku")
		req.Quantity = parseQuantity(r.PostForm.Get("quantity"))
	} else if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "adding cart item",
		slog.String("sku", strings.TrimSpace(req.SKU)),
		slog.Bool("has_cart", sess.CartID() != ""),
	)

	c, err := h.cart.Add(ctx, sess, req.SKU, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCart(w, sess.CartID(), c)
}

// handleUpdateItem changes a line quantity.
// PATCH /cart/items/{uid}
func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.cart.Update(r.Context(), sess, r.PathValue("uid"), req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCart(w, sess.CartID(), c)
}

// handleRemoveItem deletes a line.
// DELETE /cart/items/{uid}
func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	c, err := h.cart.Remove(r.Context(), sess, r.PathValue("uid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCart(w, sess.CartID(), c)
}

// handleSyncCart replaces the cart contents with the requested items.
// PUT /cart
func (h *Handler) handleSyncCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.FromRequest(w, r)

	var req syncCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "syncing cart", slog.Int("items", len(req.Items)))

	c, err := h.cart.Sync(ctx, sess, req.Items)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeCart(w, sess.CartID(), c)
}

// parseQuantity reads a form quantity; anything unparseable is 0.
func parseQuantity(s string) float64 {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return q
}
