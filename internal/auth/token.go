package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified subject of a credential. It is issued elsewhere;
// the arena only consumes it.
type Identity struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// Verifier validates an opaque bearer token and yields the identity behind it.
type Verifier interface {
	Verify(token string) (*Identity, bool)
}

var (
	ErrEmptySecret = errors.New("token secret must not be empty")
	ErrEmptyUser   = errors.New("identity username must not be empty")
)

type claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// TokenCodec signs and verifies HMAC-SHA256 JWT credentials. Verification is
// what the arena needs in production; signing exists for tests and operator
// tooling, using the same claim shape as the account service.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec for the shared secret. A zero ttl issues
// non-expiring tokens, matching what the account service hands out.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign mints a token for the identity.
func (c *TokenCodec) Sign(id Identity) (string, error) {
	if strings.TrimSpace(id.Username) == "" {
		return "", ErrEmptyUser
	}
	cl := claims{
		UserID:   id.UserID,
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
	}
	if c.ttl > 0 {
		cl.ExpiresAt = jwt.NewNumericDate(c.now().Add(c.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Verify implements Verifier. Any failure (bad signature, wrong algorithm,
// expired, garbage input) reports false; the caller refuses the upgrade.
func (c *TokenCodec) Verify(token string) (*Identity, bool) {
	if strings.TrimSpace(token) == "" {
		return nil, false
	}
	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if strings.TrimSpace(cl.Username) == "" {
		return nil, false
	}
	return &Identity{UserID: cl.UserID, Username: cl.Username, IsAdmin: cl.IsAdmin}, true
}
