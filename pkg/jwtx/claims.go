package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the lifetime of sandbox access tokens unless
// configured otherwise. It is kept short so clients exercise renewal.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims are the access-token claims issued by the sandbox API. The subject
// is the service account name.
type Claims struct {
	jwt.RegisteredClaims

	// DatabaseID binds the token to one recommendation database
	DatabaseID string `json:"db_id,omitempty"`

	// FrontendUserID is set when a service logs in on behalf of an end user
	FrontendUserID string `json:"frontend_user_id,omitempty"`

	// Family links the token to the refresh token chain that produced it
	Family string `json:"fam,omitempty"`
}

// NewAccessClaims builds claims valid from now for ttl.
func NewAccessClaims(
	subject, databaseID, frontendUserID, family string,
	issuer string,
	audience []string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		DatabaseID:     databaseID,
		FrontendUserID: frontendUserID,
		Family:         family,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiryAt checks exp and nbf against now, allowing leeway for skew.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
