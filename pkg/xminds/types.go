package xminds

// ============================================================================
// Login Types
// ============================================================================

// LoginResponse is returned by the login endpoints.
type LoginResponse struct {
	// Token is the short-lived JWT sent as the bearer token
	Token string `json:"token"`

	// RefreshToken is the long-lived, rotating credential used to log in again
	RefreshToken string `json:"refresh_token"`

	// Database describes the database the credentials are bound to
	Database *Database `json:"database,omitempty"`
}

// Database describes a recommendation database.
type Database struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ItemIDType  string `json:"item_id_type,omitempty"`
	UserIDType  string `json:"user_id_type,omitempty"`
}

type loginRefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type loginServiceRequest struct {
	Name           string `json:"name"`
	Password       string `json:"password"`
	DatabaseID     string `json:"db_id"`
	FrontendUserID string `json:"frontend_user_id,omitempty"`
}

// ============================================================================
// Users & Items
// ============================================================================

// Properties holds the free-form properties of a user or an item. The id is
// included under "user_id" or "item_id".
type Properties map[string]any

// UserResponse is returned by GetUser.
type UserResponse struct {
	User Properties `json:"user"`
}

// UsersResponse is returned by ListUsers.
type UsersResponse struct {
	Users []Properties `json:"users"`
}

// ItemResponse is returned by GetItem.
type ItemResponse struct {
	Item Properties `json:"item"`
}

// ItemsResponse is returned by ListItems.
type ItemsResponse struct {
	Items []Properties `json:"items"`
}

type userRequest struct {
	User Properties `json:"user"`
}

type itemRequest struct {
	Item Properties `json:"item"`
}

type listUsersRequest struct {
	UsersID []string `json:"users_id"`
}

type listItemsRequest struct {
	ItemsID []string `json:"items_id"`
}

// ============================================================================
// Ratings & Interactions
// ============================================================================

// Rating is a user's rating of an item. Timestamp is in seconds since the
// epoch; zero lets the server use the current time.
type Rating struct {
	ItemID    string  `json:"item_id"`
	Rating    float64 `json:"rating"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

// RatingsPage is one page of a user's ratings.
type RatingsPage struct {
	HasNext  bool     `json:"has_next"`
	NextPage int      `json:"next_page"`
	Ratings  []Rating `json:"ratings"`
}

// Interaction is an implicit feedback event of a user on an item.
type Interaction struct {
	ItemID          string  `json:"item_id"`
	InteractionType string  `json:"interaction_type"`
	Timestamp       float64 `json:"timestamp,omitempty"`
}

type ratingRequest struct {
	Rating    float64 `json:"rating"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

type ratingsBulkRequest struct {
	Ratings []Rating `json:"ratings"`
}

type interactionRequest struct {
	InteractionType string  `json:"interaction_type"`
	Timestamp       float64 `json:"timestamp,omitempty"`
}

type interactionsBulkRequest struct {
	Interactions []Interaction `json:"interactions"`
}

// ============================================================================
// Recommendations
// ============================================================================

// Filter restricts recommended items on one item property. Value is omitted
// for unary operators such as "exists".
type Filter struct {
	PropertyName string `json:"property_name"`
	Op           string `json:"op"`
	Value        any    `json:"value,omitempty"`
}

// RecommendationOptions are the optional query parameters of the live
// item-to-items and user-to-items recommendations.
type RecommendationOptions struct {
	// Amt is the number of items to return (server default when zero)
	Amt int
	// Cursor continues a previous page
	Cursor string
	// Filters restrict the recommended items
	Filters []Filter
	// ExcludeRatedItems drops items the user already rated (user-to-items only)
	ExcludeRatedItems bool
}

// PrecomputedOptions are the optional query parameters of precomputed
// recommendations.
type PrecomputedOptions struct {
	Amt int
}

// SessionOptions is the body of a session-to-items recommendation request.
type SessionOptions struct {
	Amt               int        `json:"amt,omitempty"`
	Cursor            string     `json:"cursor,omitempty"`
	Filters           []Filter   `json:"filters,omitempty"`
	Ratings           []Rating   `json:"ratings,omitempty"`
	UserProperties    Properties `json:"user_properties,omitempty"`
	ExcludeRatedItems bool       `json:"exclude_rated_items,omitempty"`
}

// RecommendationsResponse lists recommended item ids, best first.
type RecommendationsResponse struct {
	ItemsID    []string `json:"items_id"`
	NextCursor string   `json:"next_cursor,omitempty"`
}
