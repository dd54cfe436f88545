package domain

import "time"

// TokenPair is what a successful login returns: a short-lived JWT and the
// opaque refresh token that replaces the one presented.
type TokenPair struct {
	Token        string
	RefreshToken string
	Database     Database
}

// RefreshToken models the stored refresh token record in the DB.
type RefreshToken struct {
	ID             string
	AccountID      string
	DatabaseID     string
	FrontendUserID string // empty for plain service logins
	TokenHash      string // deterministic fingerprint (base64url SHA-256)
	Family         string // shared by every token rotated from the same login
	ExpiresAt      time.Time
	Revoked        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
