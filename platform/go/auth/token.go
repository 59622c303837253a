package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the fixed token lifetime. Tokens are stateless and cannot
// be revoked before expiry; keeping the window short bounds the exposure.
const DefaultTokenTTL = time.Hour

// Claims carries the identity and tenant-scoping claims embedded in every
// issued token. The token is self-contained: role and tenant changes only take
// effect once it expires and is reissued.
type Claims struct {
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	TenantID   uuid.UUID `json:"tenantId"`
	TenantSlug string    `json:"tenantSlug"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the compact stateless authentication token.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec with the given HMAC secret. A zero ttl falls back to
// DefaultTokenTTL.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Sign issues an HS256 token carrying the provided claims with iat/exp stamped
// relative to now.
func (c *Codec) Sign(claims Claims) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify validates signature and expiry and returns the embedded claims.
// Any failure (malformed, expired, bad signature) yields nil without
// distinguishing the reason; callers treat nil as unauthenticated.
func (c *Codec) Verify(tokenString string) *Claims {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil
	}

	return claims
}
