package domain

import "time"

// Properties are the free-form properties of a user or an item.
type Properties map[string]any

// User is an end user of a recommendation database.
type User struct {
	ID         string
	Properties Properties
	UpdatedAt  time.Time
}

// Item is a recommendable item of a recommendation database.
type Item struct {
	ID         string
	Properties Properties
	UpdatedAt  time.Time
}

// Rating is an explicit score in [MinRating, MaxRating] given by a user to
// an item. Each user has at most one rating per item.
type Rating struct {
	UserID    string
	ItemID    string
	Value     float64
	Timestamp time.Time
}

// Interaction is an implicit feedback event. Interactions are append-only.
type Interaction struct {
	ID        string
	UserID    string
	ItemID    string
	Type      string
	Timestamp time.Time
}

const (
	MinRating = 1
	MaxRating = 10
)
