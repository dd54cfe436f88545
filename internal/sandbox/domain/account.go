package domain

import "time"

// Account is a service account allowed to log in with a name and password.
type Account struct {
	ID           string
	Name         string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultIDType is the id type of databases created without one.
const DefaultIDType = "uuid"

// Database is a recommendation database. Every catalog record and every
// credential belongs to exactly one database.
type Database struct {
	ID          string
	Name        string
	Description string
	ItemIDType  string
	UserIDType  string
	CreatedAt   time.Time
}
