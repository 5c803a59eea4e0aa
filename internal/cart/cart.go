// Package cart implements the storefront's cart actions on top of the
// commerce backend: add with stale-cart recovery, quantity updates, line
// removal and full-state sync.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"magento-storefront/internal/adapter"
	"magento-storefront/internal/magento"
	"magento-storefront/internal/model"
	"magento-storefront/internal/reconcile"
)

// Reason codes surfaced to the presentation layer.
const (
	ReasonMissingSKU             = "missing-sku"
	ReasonInvalidItem            = "invalid-item"
	ReasonInvalidQuantity        = "invalid-quantity"
	ReasonMissingCart            = "missing-cart"
	ReasonAddFailed              = "add-failed"
	ReasonUpdateFailed           = "update-failed"
	ReasonRemoveFailed           = "remove-failed"
	ReasonSyncFailed             = "sync-failed"
	ReasonCartServiceUnavailable = "cart-service-unavailable"
)

// Failure is a cart action that stopped with a stable reason code.
type Failure struct {
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return "cart " + f.Reason + ": " + f.Err.Error()
	}
	return "cart " + f.Reason
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// ReasonOf returns the reason code carried by err, or "" when err is not a Failure.
func ReasonOf(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ""
}

// Reference is the caller's handle on the visitor's cart id.
type Reference interface {
	CartID() string
	SetCartID(id string)
	ClearCart()
}

// Service runs cart actions.
type Service struct {
	commerce adapter.Commerce
	logger   *slog.Logger
}

// NewService creates a cart Service.
func NewService(commerce adapter.Commerce, logger *slog.Logger) *Service {
	return &Service{commerce: commerce, logger: logger}
}

// Get returns the current cart, or nil when there is none. A cart the
// backend no longer knows is forgotten.
func (s *Service) Get(ctx context.Context, ref Reference) (*model.CartSnapshot, error) {
	cartID := ref.CartID()
	if cartID == "" {
		return nil, nil
	}
	cart, err := s.commerce.GetCart(ctx, cartID)
	if err != nil {
		if magento.IsCartNotFound(err) {
			s.logger.InfoContext(ctx, "forgetting stale cart", "cart_id", cartID)
			ref.ClearCart()
			return nil, nil
		}
		return nil, failure(ReasonCartServiceUnavailable, ReasonCartServiceUnavailable, err)
	}
	return cart, nil
}

// Add puts qty of sku into the visitor's cart, creating the cart when needed.
// A quantity of zero or less adds one. If the stored cart no longer exists,
// a fresh cart is created and the add retried once.
func (s *Service) Add(ctx context.Context, ref Reference, sku string, qty float64) (*model.CartSnapshot, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, &Failure{Reason: ReasonMissingSKU}
	}
	if !(qty > 0) || math.IsInf(qty, 0) {
		qty = 1
	}

	cartID, err := s.ensureCart(ctx, ref)
	if err != nil {
		return nil, err
	}

	cart, err := s.commerce.AddItem(ctx, cartID, sku, qty)
	if err != nil && magento.IsCartNotFound(err) {
		s.logger.InfoContext(ctx, "cart not found on add, starting a new cart", "cart_id", cartID)
		ref.ClearCart()
		if cartID, err = s.ensureCart(ctx, ref); err != nil {
			return nil, err
		}
		cart, err = s.commerce.AddItem(ctx, cartID, sku, qty)
	}
	if err != nil {
		return nil, failure(ReasonAddFailed, ReasonCartServiceUnavailable, err)
	}
	return cart, nil
}

// Update sets the quantity of the line identified by uid.
func (s *Service) Update(ctx context.Context, ref Reference, uid string, qty float64) (*model.CartSnapshot, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, &Failure{Reason: ReasonInvalidItem}
	}
	if !(qty > 0) || math.IsInf(qty, 0) {
		return nil, &Failure{Reason: ReasonInvalidQuantity}
	}
	cartID := ref.CartID()
	if cartID == "" {
		return nil, &Failure{Reason: ReasonMissingCart}
	}

	cart, err := s.commerce.UpdateItemQuantity(ctx, cartID, uid, qty)
	if err != nil {
		return nil, failure(ReasonUpdateFailed, ReasonCartServiceUnavailable, err)
	}
	return cart, nil
}

// Remove deletes the line identified by uid. The cart reference is cleared
// once the cart is empty.
func (s *Service) Remove(ctx context.Context, ref Reference, uid string) (*model.CartSnapshot, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, &Failure{Reason: ReasonInvalidItem}
	}
	cartID := ref.CartID()
	if cartID == "" {
		return nil, &Failure{Reason: ReasonMissingCart}
	}

	cart, err := s.commerce.RemoveItem(ctx, cartID, uid)
	if err != nil {
		return nil, failure(ReasonRemoveFailed, ReasonCartServiceUnavailable, err)
	}
	if cart.IsEmpty() {
		ref.ClearCart()
	}
	return cart, nil
}

// Sync replaces the cart contents with desired. Mutations run in the order
// remove → update → add; the first failure stops the sync.
func (s *Service) Sync(ctx context.Context, ref Reference, desired []reconcile.DesiredItem) (*model.CartSnapshot, error) {
	current, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	var items []reconcile.CurrentItem
	if current != nil {
		for _, it := range current.Items {
			items = append(items, reconcile.CurrentItem{SKU: it.SKU, UID: it.UID, Quantity: it.Quantity})
		}
	}
	diff := reconcile.DiffLineItems(items, desired)
	if diff.IsEmpty() {
		if current == nil {
			return &model.CartSnapshot{Items: []model.CartLineItem{}}, nil
		}
		return current, nil
	}

	cartID := ref.CartID()
	if cartID == "" {
		if cartID, err = s.ensureCart(ctx, ref); err != nil {
			return nil, err
		}
	}

	s.logger.DebugContext(ctx, "syncing cart",
		"cart_id", cartID,
		"remove", len(diff.ToRemove),
		"update", len(diff.ToUpdate),
		"add", len(diff.ToAdd),
	)

	cart := current
	for _, r := range diff.ToRemove {
		if cart, err = s.commerce.RemoveItem(ctx, cartID, r.UID); err != nil {
			return nil, failure(ReasonSyncFailed, ReasonCartServiceUnavailable, fmt.Errorf("remove %s: %w", r.SKU, err))
		}
	}
	for _, u := range diff.ToUpdate {
		if cart, err = s.commerce.UpdateItemQuantity(ctx, cartID, u.UID, u.NewQuantity); err != nil {
			return nil, failure(ReasonSyncFailed, ReasonCartServiceUnavailable, fmt.Errorf("update %s: %w", u.SKU, err))
		}
	}
	for _, a := range diff.ToAdd {
		if cart, err = s.commerce.AddItem(ctx, cartID, a.SKU, a.Quantity); err != nil {
			return nil, failure(ReasonSyncFailed, ReasonCartServiceUnavailable, fmt.Errorf("add %s: %w", a.SKU, err))
		}
	}

	if cart.IsEmpty() {
		ref.ClearCart()
	}
	return cart, nil
}

func (s *Service) ensureCart(ctx context.Context, ref Reference) (string, error) {
	if id := ref.CartID(); id != "" {
		return id, nil
	}
	id, err := s.commerce.CreateEmptyCart(ctx)
	if err != nil {
		return "", failure(ReasonCartServiceUnavailable, ReasonCartServiceUnavailable, fmt.Errorf("create cart: %w", err))
	}
	ref.SetCartID(id)
	return id, nil
}

// failure picks backendReason for commerce backend errors and otherReason
// for everything else.
func failure(backendReason, otherReason string, err error) *Failure {
	if magento.IsCommerceError(err) {
		return &Failure{Reason: backendReason, Err: err}
	}
	return &Failure{Reason: otherReason, Err: err}
}
