// Package session implements the signed session cookie. The cookie value is
// an HS256 JWT carrying the session key/value pairs; a missing, malformed or
// expired cookie always resolves to an empty session, never to an error.
package session

import (
	"time" // Time for token expiration

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/golang-jwt/jwt/v5" // JWT library
)

// CookieName is the name of the session cookie
const CookieName = "__session"

// Session holds the values carried by the cookie
type Session struct {
	values map[string]string
}

// New returns an empty session
func New() *Session {
	return &Session{values: map[string]string{}}
}

// Get returns the value for key, or "" when absent
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Set stores a value under key
func (s *Session) Set(key, value string) {
	s.values[key] = value
}

// UserID returns the canonical user id of the session, "" when anonymous
func (s *Session) UserID() string {
	return s.Get("userId")
}

// Claims wrap the session values in a JWT payload
type Claims struct {
	Values               map[string]string `json:"values"` // Session key/value pairs
	jwt.RegisteredClaims                   // Standard JWT claims
}

// Manager signs and verifies session cookies
type Manager struct {
	secret string        // HMAC signing secret
	maxAge time.Duration // Token lifetime
}

// NewManager creates a Manager with the given signing secret
func NewManager(secret string) *Manager {
	return &Manager{secret: secret, maxAge: 24 * time.Hour}
}

// Encode signs the session values into a cookie value
func (m *Manager) Encode(s *Session) (string, error) {
	claims := Claims{
		Values: s.values, // Session values
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.maxAge)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(m.secret))                // Sign the token with the secret
}

// Decode parses a cookie value back into a session. Any parse or
// signature failure yields an empty session.
func (m *Manager) Decode(raw string) *Session {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(m.secret), nil // Return the secret key for validation
	})
	if err != nil {
		return New() // Malformed, expired or badly signed cookie
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Values == nil {
		return New()
	}
	s := New()
	for k, v := range claims.Values {
		s.values[k] = v
	}
	return s
}

// Get resolves the session carried by the request cookie
func (m *Manager) Get(c *gin.Context) *Session {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return New() // No cookie present
	}
	return m.Decode(raw)
}

// Commit signs the session and sets it as the response cookie
func (m *Manager) Commit(c *gin.Context, s *Session) error {
	raw, err := m.Encode(s)
	if err != nil {
		return err
	}
	// Session-scoped cookie (no Max-Age); the JWT expiry bounds its validity
	c.SetCookie(CookieName, raw, 0, "/", "", false, true)
	return nil
}

// Destroy expires the session cookie
func (m *Manager) Destroy(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
