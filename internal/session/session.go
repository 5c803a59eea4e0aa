// Package session keeps the visitor's cart id and customer token in cookies.
// The service itself stores nothing; every request carries its own state.
package session

import (
	"net/http"
	"time"
)

const (
	CartCookie          = "cart_id"
	CustomerTokenCookie = "customer_token"

	// MaxAge is the lifetime of both cookies.
	MaxAge = 7 * 24 * time.Hour
)

// Manager reads and writes the session cookies.
type Manager struct {
	secure bool
}

// NewManager creates a Manager. secure marks cookies Secure.
func NewManager(secure bool) *Manager {
	return &Manager{secure: secure}
}

// FromRequest reads the session cookies of r. Writes go to w.
func (m *Manager) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	return &Session{
		m:      m,
		w:      w,
		cartID: m.read(r, CartCookie),
		token:  m.read(r, CustomerTokenCookie),
	}
}

func (m *Manager) read(r *http.Request, name string) string {
	if c, err := r.Cookie(name); err == nil {
		return c.Value
	}
	return ""
}

func (m *Manager) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session is one request's view of the cookies. It satisfies both
// checkout.CartReference and cart.Reference.
type Session struct {
	m      *Manager
	w      http.ResponseWriter
	cartID string
	token  string
}

// New returns a Session that is not backed by cookies, for callers such as
// MCP tools that pass the cart id and token explicitly.
func New(cartID, token string) *Session {
	return &Session{cartID: cartID, token: token}
}

func (s *Session) CartID() string        { return s.cartID }
func (s *Session) CustomerToken() string { return s.token }

// SetCartID stores id for this request and in the cart cookie.
func (s *Session) SetCartID(id string) {
	s.cartID = id
	s.write(CartCookie, id)
}

// ClearCart forgets the cart id and expires the cart cookie.
func (s *Session) ClearCart() {
	s.cartID = ""
	s.write(CartCookie, "")
}

// SetCustomerToken stores token for this request and in its cookie.
func (s *Session) SetCustomerToken(token string) {
	s.token = token
	s.write(CustomerTokenCookie, token)
}

// ClearCustomerToken forgets the token and expires its cookie.
func (s *Session) ClearCustomerToken() {
	s.token = ""
	s.write(CustomerTokenCookie, "")
}

// write sets the cookie, or expires it when value is empty. Detached
// sessions write nothing.
func (s *Session) write(name, value string) {
	if s.w == nil {
		return
	}
	maxAge := int(MaxAge / time.Second)
	if value == "" {
		maxAge = -1
	}
	s.m.set(s.w, name, value, maxAge)
}
