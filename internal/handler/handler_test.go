package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magento-storefront/internal/adapter"
	"magento-storefront/internal/checkout"
	"magento-storefront/internal/magento"
	"magento-storefront/internal/metrics"
	"magento-storefront/internal/model"
	"magento-storefront/internal/outcome"
	"magento-storefront/internal/readiness"
	"magento-storefront/internal/session"
)

func testHandler(mock *adapter.Mock) (*Handler, *http.ServeMux) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(Deps{
		Commerce: mock,
		Checkout: checkout.New(mock, nil, logger),
		Sessions: session.NewManager(false),
		Logger:   logger,
	})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func withCart(h *Handler, req *http.Request, cartID string) *http.Request {
	req.AddCookie(&http.Cookie{Name: session.CartCookie, Value: cartID})
	return req
}

// responseCookie returns the Set-Cookie for name, or nil.
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func staleCartError() error {
	return &magento.CommerceError{Message: "Could not find a cart with ID \"cart-1\""}
}

func virtualSnapshot(cartID string) *readiness.Snapshot {
	return &readiness.Snapshot{
		CartID:         cartID,
		IsVirtual:      true,
		PaymentMethods: []model.PaymentMethodOption{{Code: "checkmo", Title: "Check / Money order"}},
	}
}

func TestHandleHealth(t *testing.T) {
	_, mux := testHandler(&adapter.Mock{})

	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
		var resp healthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewCheckout(reg).RecordOutcome(checkout.OutcomePlaced)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := &adapter.Mock{}
	h := New(Deps{
		Commerce: mock,
		Checkout: checkout.New(mock, nil, logger),
		Sessions: session.NewManager(false),
		Gatherer: reg,
		Logger:   logger,
	})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `checkout_outcomes_total{outcome="placed"} 1`)
}

func TestMetricsEndpoint_OmittedWithoutGatherer(t *testing.T) {
	_, mux := testHandler(&adapter.Mock{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// === Cart ===

func TestGetCart_NoCart(t *testing.T) {
	_, mux := testHandler(&adapter.Mock{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.CartID)
	assert.Empty(t, resp.Cart.Items)
}

func TestGetCart_StaleCartClearsCookie(t *testing.T) {
	mock := &adapter.Mock{
		GetCartFunc: func(ctx context.Context, cartID string) (*model.CartSnapshot, error) {
			return nil, staleCartError()
		},
	}
	h, mux := testHandler(mock)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, httptest.NewRequest("GET", "/cart", nil), "cart-1"))

	require.Equal(t, http.StatusOK, w.Code)
	c := responseCookie(w, session.CartCookie)
	require.NotNil(t, c)
	assert.Negative(t, c.MaxAge)
}

func TestGetCart_BackendDown(t *testing.T) {
	mock := &adapter.Mock{
		GetCartFunc: func(ctx context.Context, cartID string) (*model.CartSnapshot, error) {
			return nil, &magento.CommerceError{Message: "upstream 503", StatusCode: 503}
		},
	}
	h, mux := testHandler(mock)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, httptest.NewRequest("GET", "/cart", nil), "cart-1"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "UPSTREAM_ERROR", errorCode(t, w.Body.Bytes()))
	assert.NotContains(t, w.Body.String(), "upstream 503")
}

func TestAddItem_JSONCreatesCart(t *testing.T) {
	var gotSKU string
	var gotQty float64
	mock := &adapter.Mock{
		CreateEmptyCartFunc: func(ctx context.Context) (string, error) {
			return "cart-new", nil
		},
		AddItemFunc: func(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error) {
			gotSKU, gotQty = sku, qty
			return &model.CartSnapshot{
				ID:            cartID,
				TotalQuantity: qty,
				Items:         []model.CartLineItem{{UID: "u1", SKU: sku, Quantity: qty}},
			}, nil
		},
	}
	_, mux := testHandler(mock)

	body := `{"sku":" MUG-1 ","quantity":2}`
	req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "MUG-1", gotSKU)
	assert.Equal(t, 2.0, gotQty)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cart-new", resp.CartID)
	require.Len(t, resp.Cart.Items, 1)

	c := responseCookie(w, session.CartCookie)
	require.NotNil(t, c)
	assert.Equal(t, "cart-new", c.Value)
	assert.True(t, c.HttpOnly)
}

func TestAddItem_FormDefaultsQuantity(t *testing.T) {
	var gotQty float64
	mock := &adapter.Mock{
		AddItemFunc: func(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error) {
			gotQty = qty
			return &model.CartSnapshot{ID: cartID}, nil
		},
	}
	h, mux := testHandler(mock)

	form := url.Values{"sku": {"MUG-1"}, "quantity": {"lots"}}
	req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, withCart(h, req, "cart-1"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1.0, gotQty)
}

func TestAddItem_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		addErr     error
		wantStatus int
		wantCode   string
	}{
		{"missing sku", `{"sku":"  "}`, nil, http.StatusBadRequest, "REJECTED"},
		{"invalid json", `{"sku":`, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"backend rejects", `{"sku":"MUG-1"}`, &magento.CommerceError{Message: "out of stock"}, http.StatusUnprocessableEntity, "REJECTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &adapter.Mock{
				AddItemFunc: func(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error) {
					return nil, tt.addErr
				},
			}
			h, mux := testHandler(mock)

			req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, withCart(h, req, "cart-1"))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w.Body.Bytes()))
			assert.NotContains(t, w.Body.String(), "out of stock")
		})
	}
}

func TestUpdateItem(t *testing.T) {
	var gotUID string
	mock := &adapter.Mock{
		UpdateItemQuantityFunc: func(ctx context.Context, cartID, uid string, qty float64) (*model.CartSnapshot, error) {
			gotUID = uid
			return &model.CartSnapshot{ID: cartID, TotalQuantity: qty}, nil
		},
	}
	h, mux := testHandler(mock)

	req := httptest.NewRequest("PATCH", "/cart/items/MTIz", strings.NewReader(`{"quantity":3}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, req, "cart-1"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "MTIz", gotUID)
}

func TestUpdateItem_NoCart(t *testing.T) {
	_, mux := testHandler(&adapter.Mock{})

	req := httptest.NewRequest("PATCH", "/cart/items/MTIz", strings.NewReader(`{"quantity":3}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "MISSING_CART", errorCode(t, w.Body.Bytes()))
}

func TestRemoveItem_LastLineClearsCart(t *testing.T) {
	mock := &adapter.Mock{
		RemoveItemFunc: func(ctx context.Context, cartID, uid string) (*model.CartSnapshot, error) {
			return &model.CartSnapshot{ID: cartID, Items: []model.CartLineItem{}}, nil
		},
	}
	h, mux := testHandler(mock)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, httptest.NewRequest("DELETE", "/cart/items/MTIz", nil), "cart-1"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.CartID)

	c := responseCookie(w, session.CartCookie)
	require.NotNil(t, c)
	assert.Negative(t, c.MaxAge)
}

func TestSyncCart(t *testing.T) {
	var ops []string
	mock := &adapter.Mock{
		GetCartFunc: func(ctx context.Context, cartID string) (*model.CartSnapshot, error) {
			return &model.CartSnapshot{ID: cartID, Items: []model.CartLineItem{
				{UID: "u1", SKU: "MUG-1", Quantity: 1},
				{UID: "u2", SKU: "HAT-1", Quantity: 1},
			}}, nil
		},
		RemoveItemFunc: func(ctx context.Context, cartID, uid string) (*model.CartSnapshot, error) {
			ops = append(ops, "remove:"+uid)
			return &model.CartSnapshot{ID: cartID}, nil
		},
		UpdateItemQuantityFunc: func(ctx context.Context, cartID, uid string, qty float64) (*model.CartSnapshot, error) {
			ops = append(ops, "update:"+uid)
			return &model.CartSnapshot{ID: cartID}, nil
		},
		AddItemFunc: func(ctx context.Context, cartID, sku string, qty float64) (*model.CartSnapshot, error) {
			ops = append(ops, "add:"+sku)
			return &model.CartSnapshot{ID: cartID, Items: []model.CartLineItem{{UID: "u3", SKU: sku, Quantity: qty}}}, nil
		},
	}
	h, mux := testHandler(mock)

	body := `{"items":[{"sku":"MUG-1","quantity":4},{"sku":"TEE-1","quantity":1}]}`
	req := httptest.NewRequest("PUT", "/cart", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, req, "cart-1"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"remove:u2", "update:u1", "add:TEE-1"}, ops)
}

// === Checkout ===

func TestCheckoutPage_NoCartWithNotice(t *testing.T) {
	_, mux := testHandler(&adapter.Mock{})

	req := httptest.NewRequest("GET", "/checkout?checkout=error&reason=invalid-email", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		HasCart bool   `json:"has_cart"`
		Notice  notice `json:"notice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.HasCart)
	assert.Equal(t, "error", resp.Notice.Type)
	assert.Equal(t, checkoutMessages[checkout.ReasonInvalidEmail], resp.Notice.Message)
}

func TestCheckoutPage_UnknownReasonFallsBack(t *testing.T) {
	_, mux := testHandler(&adapter.Mock{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/checkout?checkout=error&reason=nope", nil))

	assert.Contains(t, w.Body.String(), fallbackCheckoutMessage)
}

func TestCheckoutPage_WithCart(t *testing.T) {
	mock := &adapter.Mock{
		GetCartFunc: func(ctx context.Context, cartID string) (*model.CartSnapshot, error) {
			return &model.CartSnapshot{ID: cartID, TotalQuantity: 1}, nil
		},
		GetReadinessSnapshotFunc: func(ctx context.Context, cartID string) (*readiness.Snapshot, error) {
			return virtualSnapshot(cartID), nil
		},
	}
	h, mux := testHandler(mock)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, httptest.NewRequest("GET", "/checkout", nil), "cart-1"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page checkout.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.True(t, page.HasCart)
	assert.Equal(t, []string{readiness.ReasonGuestEmailRequired}, page.VisibleReasons)
	assert.NotContains(t, w.Body.String(), `"notice"`)
}

func TestCheckoutPage_BackendFailure(t *testing.T) {
	mock := &adapter.Mock{
		GetCartFunc: func(ctx context.Context, cartID string) (*model.CartSnapshot, error) {
			return nil, &magento.CommerceError{Message: "down"}
		},
	}
	h, mux := testHandler(mock)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, httptest.NewRequest("GET", "/checkout", nil), "cart-1"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestReadiness(t *testing.T) {
	mock := &adapter.Mock{
		GetReadinessSnapshotFunc: func(ctx context.Context, cartID string) (*readiness.Snapshot, error) {
			s := virtualSnapshot(cartID)
			s.Email = "guest@example.test"
			return s, nil
		},
	}
	h, mux := testHandler(mock)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withCart(h, httptest.NewRequest("GET", "/checkout/readiness", nil), "cart-1"))

	require.Equal(t, http.StatusOK, w.Code)
	var r model.CheckoutReadiness
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.True(t, r.Ready)
	assert.Equal(t, "cart-1", r.CartID)
	assert.Empty(t, r.Reasons)
}

func TestReadiness_MissingCart(t *testing.T) {
	t.Run("no cookie", func(t *testing.T) {
		_, mux := testHandler(&adapter.Mock{})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/checkout/readiness", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "MISSING_CART", errorCode(t, w.Body.Bytes()))
	})

	t.Run("stale cart", func(t *testing.T) {
		mock := &adapter.Mock{
			GetReadinessSnapshotFunc: func(ctx context.Context, cartID string) (*readiness.Snapshot, error) {
				return nil, staleCartError()
			},
		}
		h, mux := testHandler(mock)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, withCart(h, httptest.NewRequest("GET", "/checkout/readiness", nil), "cart-1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		c := responseCookie(w, session.CartCookie)
		require.NotNil(t, c)
		assert.Negative(t, c.MaxAge)
	})
}

func placingMock(placeErr error) *adapter.Mock {
	return &adapter.Mock{
		GetReadinessSnapshotFunc: func(ctx context.Context, cartID string) (*readiness.Snapshot, error) {
			return virtualSnapshot(cartID), nil
		},
		PlaceGuestOrderFunc: func(ctx context.Context, cartID string, in model.PlaceOrderInput) (string, error) {
			if placeErr != nil {
				return "", placeErr
			}
			return "000000123", nil
		},
	}
}

func TestPlaceOrder_JSON(t *testing.T) {
	h, mux := testHandler(placingMock(nil))

	body := `{"email":"Guest@Example.test","payment_method":"checkmo"}`
	req := httptest.NewRequest("POST", "/checkout/place-order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, withCart(h, req, "cart-1"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp placeOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "000000123", resp.OrderNumber)

	got, err := outcome.Parse(w.Header().Get(outcome.Header))
	require.NoError(t, err)
	assert.Equal(t, outcome.Placed("000000123"), got)

	c := responseCookie(w, session.CartCookie)
	require.NotNil(t, c)
	assert.Negative(t, c.MaxAge)
}

func TestPlaceOrder_JSONRejections(t *testing.T) {
	tests := []struct {
		name       string
		cart       bool
		body       string
		placeErr   error
		wantStatus int
		wantReason string
	}{
		{"missing cart", false, `{"email":"a@b.co","payment_method":"checkmo"}`, nil, http.StatusNotFound, checkout.ReasonMissingCart},
		{"invalid email", true, `{"email":"nope","payment_method":"checkmo"}`, nil, http.StatusUnprocessableEntity, checkout.ReasonInvalidEmail},
		{"missing payment", true, `{"email":"a@b.co"}`, nil, http.StatusUnprocessableEntity, checkout.ReasonMissingPaymentMethod},
		{"backend failure", true, `{"email":"a@b.co","payment_method":"checkmo"}`, &magento.CommerceError{Message: "declined"}, http.StatusBadGateway, checkout.ReasonCheckoutFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mux := testHandler(placingMock(tt.placeErr))

			req := httptest.NewRequest("POST", "/checkout/place-order", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.cart {
				withCart(h, req, "cart-1")
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp placeOrderResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantReason, resp.ReasonCode)
			assert.Equal(t, checkoutMessage(tt.wantReason), resp.Message)
			assert.NotContains(t, w.Body.String(), "declined")

			got, err := outcome.Parse(w.Header().Get(outcome.Header))
			require.NoError(t, err)
			assert.Equal(t, outcome.Rejected(tt.wantReason), got)
		})
	}
}

func TestPlaceOrder_InvalidJSON(t *testing.T) {
	h, mux := testHandler(placingMock(nil))

	req := httptest.NewRequest("POST", "/checkout/place-order", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, withCart(h, req, "cart-1"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get(outcome.Header))
}

func TestPlaceOrder_FormRedirects(t *testing.T) {
	tests := []struct {
		name         string
		form         url.Values
		wantLocation string
	}{
		{
			name:         "placed",
			form:         url.Values{"email": {"a@b.co"}, "payment_method": {"checkmo"}},
			wantLocation: "/order/confirmation?order=000000123",
		},
		{
			name:         "rejected",
			form:         url.Values{"email": {"a@b.co"}},
			wantLocation: "/checkout?checkout=error&reason=missing-payment-method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mux := testHandler(placingMock(nil))

			req := httptest.NewRequest("POST", "/checkout/place-order", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, withCart(h, req, "cart-1"))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			assert.NotEmpty(t, w.Header().Get(outcome.Header))
		})
	}
}

func TestCheckoutStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, checkoutStatus(checkout.ReasonMissingCart))
	assert.Equal(t, http.StatusUnprocessableEntity, checkoutStatus(checkout.ReasonCartNotReady))
	assert.Equal(t, http.StatusBadGateway, checkoutStatus(checkout.ReasonCheckoutFailed))
	assert.Equal(t, http.StatusInternalServerError, checkoutStatus(checkout.ReasonUnexpected))
}

func TestPlaceOrder_FormRedirectUsesStorefrontURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := placingMock(nil)
	h := New(Deps{
		Commerce:      mock,
		Checkout:      checkout.New(mock, nil, logger),
		Sessions:      session.NewManager(false),
		StorefrontURL: "https://shop.example/",
		Logger:        logger,
	})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	form := url.Values{"email": {"a@b.co"}, "payment_method": {"checkmo"}}
	req := httptest.NewRequest("POST", "/checkout/place-order", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, withCart(h, req, "cart-1"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://shop.example/order/confirmation?order=000000123", w.Header().Get("Location"))
}
