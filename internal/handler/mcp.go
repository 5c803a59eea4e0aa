// MCP transport for the storefront using the official MCP Go SDK.
// Exposes cart and checkout operations as MCP tools.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"magento-storefront/internal/cart"
	"magento-storefront/internal/checkout"
	"magento-storefront/internal/magento"
	"magento-storefront/internal/model"
	"magento-storefront/internal/readiness"
	"magento-storefront/internal/reconcile"
	"magento-storefront/internal/session"
)

// === MCP Tool Input Types ===
// Tools carry the cart id, and for checkout the customer token, explicitly
// instead of cookies.
// Fields without omitempty are required in the generated input schema.

// GetCartInput is the input schema for get_cart.
type GetCartInput struct {
	CartID string `json:"cart_id,omitempty" jsonschema:"cart id returned by a previous cart tool"`
}

// AddToCartInput is the input schema for add_to_cart.
type AddToCartInput struct {
	CartID   string  `json:"cart_id,omitempty" jsonschema:"cart id returned by a previous cart tool"`
	SKU      string  `json:"sku" jsonschema:"product SKU"`
	Quantity float64 `json:"quantity,omitempty" jsonschema:"quantity to add, defaults to 1"`
}

// SyncCartInput is the input schema for sync_cart.
type SyncCartInput struct {
	CartID string                  `json:"cart_id,omitempty" jsonschema:"cart id returned by a previous cart tool"`
	Items  []reconcile.DesiredItem `json:"items" jsonschema:"complete desired cart contents"`
}

// ReadinessInput is the input schema for get_checkout_readiness.
type ReadinessInput struct {
	CartID string `json:"cart_id" jsonschema:"cart id"`
}

// PlaceOrderInput is the input schema for place_order.
type PlaceOrderInput struct {
	CartID        string             `json:"cart_id" jsonschema:"cart id"`
	CustomerToken string             `json:"customer_token,omitempty" jsonschema:"customer bearer token for a signed-in shopper"`
	Checkout      checkout.FormInput `json:"checkout" jsonschema:"checkout submission"`
}

// === MCP Tool Output Types ===
// Money is rendered as a decimal string so the inferred output schema stays
// a plain string.

// CartOutput is returned by the cart tools.
type CartOutput struct {
	CartID string   `json:"cart_id,omitempty"`
	Cart   CartView `json:"cart"`
}

// CartView is a CartSnapshot with string money.
type CartView struct {
	ID            string         `json:"id"`
	TotalQuantity float64        `json:"total_quantity"`
	GrandTotal    string         `json:"grand_total,omitempty"`
	Items         []CartLineView `json:"items"`
}

// CartLineView is one cart row.
type CartLineView struct {
	UID       string  `json:"uid"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	LineTotal string  `json:"line_total,omitempty"`
}

// ReadinessOutput is returned by get_checkout_readiness.
type ReadinessOutput struct {
	CartID                   string                      `json:"cart_id"`
	Ready                    bool                        `json:"ready"`
	Reasons                  []string                    `json:"reasons"`
	IsVirtual                bool                        `json:"is_virtual"`
	RequiresGuestEmail       bool                        `json:"requires_guest_email"`
	AvailablePaymentMethods  []model.PaymentMethodOption `json:"available_payment_methods"`
	AvailableShippingMethods []ShippingMethodView        `json:"available_shipping_methods"`
	SelectedShippingMethod   string                      `json:"selected_shipping_method,omitempty"`
}

// ShippingMethodView is a shipping option keyed the way checkout accepts it.
type ShippingMethodView struct {
	Key    string `json:"key"`
	Title  string `json:"title,omitempty"`
	Amount string `json:"amount,omitempty"`
}

// PlaceOrderOutput is returned by place_order. Rejections are reported in
// the output, not as tool errors.
type PlaceOrderOutput struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"order_number,omitempty"`
	ReasonCode  string `json:"reason_code,omitempty"`
	Message     string `json:"message,omitempty"`
}

// NewMCPServer creates an MCP server with storefront tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "magento-storefront",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Magento storefront cart and checkout. " +
				"Build a cart with add_to_cart or sync_cart, check get_checkout_readiness, then place_order.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cart",
		Description: "Get the current cart. Returns an empty cart when cart_id is unknown or missing.",
	}, h.mcpGetCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_to_cart",
		Description: "Add a product by SKU. Creates a cart when cart_id is missing or stale.",
	}, h.mcpAddToCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_cart",
		Description: "Replace the cart contents with the given items. Quantities of zero remove the SKU.",
	}, h.mcpSyncCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_checkout_readiness",
		Description: "Report whether the cart can be submitted and which reasons block it.",
	}, h.mcpReadiness)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "place_order",
		Description: "Place the order for the cart using email, payment method and, for physical carts, a shipping address.",
	}, h.mcpPlaceOrder)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpGetCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCartInput,
) (*mcp.CallToolResult, CartOutput, error) {
	sess := session.New(input.CartID, "")
	c, err := h.cart.Get(ctx, sess)
	if err != nil {
		return nil, CartOutput{}, h.mcpError(err)
	}
	return nil, cartOutput(sess.CartID(), c), nil
}

func (h *Handler) mcpAddToCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AddToCartInput,
) (*mcp.CallToolResult, CartOutput, error) {
	sess := session.New(input.CartID, "")
	c, err := h.cart.Add(ctx, sess, input.SKU, input.Quantity)
	if err != nil {
		return nil, CartOutput{}, h.mcpError(err)
	}
	return nil, cartOutput(sess.CartID(), c), nil
}

func (h *Handler) mcpSyncCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SyncCartInput,
) (*mcp.CallToolResult, CartOutput, error) {
	sess := session.New(input.CartID, "")
	c, err := h.cart.Sync(ctx, sess, input.Items)
	if err != nil {
		return nil, CartOutput{}, h.mcpError(err)
	}
	return nil, cartOutput(sess.CartID(), c), nil
}

func (h *Handler) mcpReadiness(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ReadinessInput,
) (*mcp.CallToolResult, ReadinessOutput, error) {
	if input.CartID == "" {
		return nil, ReadinessOutput{}, h.mcpError(model.NewMissingCartError())
	}

	snap, err := h.commerce.GetReadinessSnapshot(ctx, input.CartID)
	if err != nil {
		if magento.IsCartNotFound(err) {
			return nil, ReadinessOutput{}, h.mcpError(model.NewMissingCartError())
		}
		return nil, ReadinessOutput{}, h.mcpError(upstreamError("readiness", err))
	}
	return nil, readinessOutput(readiness.Evaluate(*snap)), nil
}

func (h *Handler) mcpPlaceOrder(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input PlaceOrderInput,
) (*mcp.CallToolResult, PlaceOrderOutput, error) {
	sess := session.New(input.CartID, input.CustomerToken)
	number, err := h.checkout.PlaceOrder(ctx, sess, input.Checkout)
	if err != nil {
		reason := checkout.ReasonOf(err)
		return nil, PlaceOrderOutput{ReasonCode: reason, Message: checkoutMessage(reason)}, nil
	}
	return nil, PlaceOrderOutput{Success: true, OrderNumber: number}, nil
}

// mcpError converts service errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	var cf *cart.Failure
	if errors.As(err, &cf) {
		return fmt.Errorf("%s: %s", cartAPIError(cf).Code, cf.Reason)
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}

// === View Conversion ===

func cartOutput(cartID string, c *model.CartSnapshot) CartOutput {
	out := CartOutput{CartID: cartID, Cart: CartView{Items: []CartLineView{}}}
	if c == nil {
		return out
	}
	out.Cart.ID = c.ID
	out.Cart.TotalQuantity = c.TotalQuantity
	out.Cart.GrandTotal = c.GrandTotal.String()
	for _, item := range c.Items {
		out.Cart.Items = append(out.Cart.Items, CartLineView{
			UID:       item.UID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal.String(),
		})
	}
	return out
}

func readinessOutput(r model.CheckoutReadiness) ReadinessOutput {
	out := ReadinessOutput{
		CartID:                   r.CartID,
		Ready:                    r.Ready,
		Reasons:                  append([]string{}, r.Reasons...),
		IsVirtual:                r.IsVirtual,
		RequiresGuestEmail:       r.RequiresGuestEmail,
		AvailablePaymentMethods:  append([]model.PaymentMethodOption{}, r.AvailablePaymentMethods...),
		AvailableShippingMethods: make([]ShippingMethodView, 0, len(r.AvailableShippingMethods)),
		SelectedShippingMethod:   r.SelectedShippingMethod,
	}
	for _, opt := range r.AvailableShippingMethods {
		title := opt.MethodTitle
		if opt.CarrierTitle != "" && title != "" {
			title = opt.CarrierTitle + " - " + title
		} else if title == "" {
			title = opt.CarrierTitle
		}
		out.AvailableShippingMethods = append(out.AvailableShippingMethods, ShippingMethodView{
			Key:    opt.Key(),
			Title:  title,
			Amount: opt.Amount.String(),
		})
	}
	return out
}
