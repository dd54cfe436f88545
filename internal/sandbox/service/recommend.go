package service

import (
	"context"
	"encoding/base64"
	"slices"
	"strconv"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
)

const (
	DefaultRecommendationAmt = 10
	MaxRecommendationAmt     = 200
)

// RecommendationQuery are the options shared by the live recommendations.
type RecommendationQuery struct {
	Amt          int
	Cursor       string
	Filters      []Filter
	ExcludeRated bool
}

// SessionQuery scores items for an anonymous session described by its
// ratings instead of a stored user.
type SessionQuery struct {
	RecommendationQuery
	Ratings        []domain.Rating
	UserProperties domain.Properties
}

// Recommendations are item ids, best first, plus a cursor for the next page
// (empty on the last page).
type Recommendations struct {
	ItemsID    []string
	NextCursor string
}

// RecommendationService ranks items by rating co-occurrence with a profile
// (one item, a user's ratings or a session's ratings). Items the profile
// says nothing about follow, ranked by popularity.
type RecommendationService struct {
	Store store.Store
}

func (s *RecommendationService) ItemToItems(
	ctx context.Context,
	databaseID, itemID string,
	q RecommendationQuery,
) (Recommendations, error) {
	if err := requireID("item id", itemID); err != nil {
		return Recommendations{}, err
	}
	if err := q.validate(); err != nil {
		return Recommendations{}, err
	}

	m, err := s.load(ctx, databaseID)
	if err != nil {
		return Recommendations{}, err
	}
	if !m.known(itemID) {
		return Recommendations{}, errNotFound("Item", itemID)
	}

	profile := map[string]float64{itemID: 1}
	ranked := m.rank(profile, "", map[string]bool{itemID: true}, q.Filters)
	return paginate(ranked, q)
}

func (s *RecommendationService) UserToItems(
	ctx context.Context,
	databaseID, userID string,
	q RecommendationQuery,
) (Recommendations, error) {
	if err := requireID("user id", userID); err != nil {
		return Recommendations{}, err
	}
	if err := q.validate(); err != nil {
		return Recommendations{}, err
	}

	m, err := s.load(ctx, databaseID)
	if err != nil {
		return Recommendations{}, err
	}

	rated := m.byUser[userID]
	ranked := m.rank(centered(rated), userID, excluded(rated, q.ExcludeRated), q.Filters)
	return paginate(ranked, q)
}

func (s *RecommendationService) SessionToItems(
	ctx context.Context,
	databaseID string,
	q SessionQuery,
) (Recommendations, error) {
	if err := q.validate(); err != nil {
		return Recommendations{}, err
	}
	rated := make(map[string]float64, len(q.Ratings))
	for _, r := range q.Ratings {
		if err := validateRating(r.ItemID, r.Value, 0); err != nil {
			return Recommendations{}, err
		}
		rated[r.ItemID] = r.Value
	}

	m, err := s.load(ctx, databaseID)
	if err != nil {
		return Recommendations{}, err
	}

	ranked := m.rank(centered(rated), "", excluded(rated, q.ExcludeRated), q.Filters)
	return paginate(ranked, q.RecommendationQuery)
}

// PrecomputedItemToItems serves the first amt similar items without
// filters or paging.
func (s *RecommendationService) PrecomputedItemToItems(
	ctx context.Context,
	databaseID, itemID string,
	amt int,
) (Recommendations, error) {
	rec, err := s.ItemToItems(ctx, databaseID, itemID, RecommendationQuery{Amt: amt})
	rec.NextCursor = ""
	return rec, err
}

// PrecomputedUserToItems serves the first amt items for a user, leaving out
// items the user already rated.
func (s *RecommendationService) PrecomputedUserToItems(
	ctx context.Context,
	databaseID, userID string,
	amt int,
) (Recommendations, error) {
	rec, err := s.UserToItems(ctx, databaseID, userID, RecommendationQuery{Amt: amt, ExcludeRated: true})
	rec.NextCursor = ""
	return rec, err
}

func (q *RecommendationQuery) validate() error {
	if q.Amt == 0 {
		q.Amt = DefaultRecommendationAmt
	}
	if q.Amt < 1 || q.Amt > MaxRecommendationAmt {
		return errWrongData("amt must be between 1 and %d", MaxRecommendationAmt)
	}
	if _, err := decodeCursor(q.Cursor); err != nil {
		return err
	}
	for _, f := range q.Filters {
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Model
// ============================================================================

type model struct {
	props      map[string]domain.Properties
	byUser     map[string]map[string]float64
	byItem     map[string]map[string]float64
	popularity map[string]float64
	ids        []string
}

func (s *RecommendationService) load(ctx context.Context, databaseID string) (*model, error) {
	items, err := s.Store.Items().ListAllItems(ctx, databaseID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.Store.Ratings().ListAllRatings(ctx, databaseID)
	if err != nil {
		return nil, err
	}

	m := &model{
		props:      make(map[string]domain.Properties, len(items)),
		byUser:     map[string]map[string]float64{},
		byItem:     map[string]map[string]float64{},
		popularity: map[string]float64{},
	}
	for _, it := range items {
		m.props[it.ID] = it.Properties
	}
	for _, r := range ratings {
		if m.byUser[r.UserID] == nil {
			m.byUser[r.UserID] = map[string]float64{}
		}
		if m.byItem[r.ItemID] == nil {
			m.byItem[r.ItemID] = map[string]float64{}
		}
		m.byUser[r.UserID][r.ItemID] = r.Value
		m.byItem[r.ItemID][r.UserID] = r.Value
		m.popularity[r.ItemID] += r.Value / domain.MaxRating
	}

	seen := map[string]bool{}
	for id := range m.props {
		seen[id] = true
	}
	for id := range m.byItem {
		seen[id] = true
	}
	m.ids = make([]string, 0, len(seen))
	for id := range seen {
		m.ids = append(m.ids, id)
	}
	slices.Sort(m.ids)
	return m, nil
}

func (m *model) known(itemID string) bool {
	_, inCatalog := m.props[itemID]
	_, rated := m.byItem[itemID]
	return inCatalog || rated
}

// rank scores every candidate against profile (item id to weight) using the
// ratings of everyone but self.
func (m *model) rank(profile map[string]float64, self string, exclude map[string]bool, filters []Filter) []string {
	scores := map[string]float64{}
	for x, w := range profile {
		for u, rux := range m.byItem[x] {
			if u == self {
				continue
			}
			for y, ruy := range m.byUser[u] {
				if y == x {
					continue
				}
				scores[y] += w * (rux / domain.MaxRating) * (ruy / domain.MaxRating)
			}
		}
	}

	candidates := make([]string, 0, len(m.ids))
	for _, id := range m.ids {
		if exclude[id] || !m.matches(id, filters) {
			continue
		}
		candidates = append(candidates, id)
	}

	slices.SortStableFunc(candidates, func(a, b string) int {
		sa, sb := scores[a], scores[b]
		if ta, tb := tier(sa), tier(sb); ta != tb {
			return ta - tb
		}
		if sa != sb {
			return cmpDesc(sa, sb)
		}
		return cmpDesc(m.popularity[a], m.popularity[b])
	})
	return candidates
}

func (m *model) matches(itemID string, filters []Filter) bool {
	props := m.props[itemID]
	for _, f := range filters {
		if !f.Match(props) {
			return false
		}
	}
	return true
}

// tier puts items the profile endorses ahead of everything else.
func tier(score float64) int {
	if score > 0 {
		return 0
	}
	return 1
}

func cmpDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// centered maps ratings to weights in [-1, 1] so low ratings push similar
// items down.
func centered(ratings map[string]float64) map[string]float64 {
	const mid = (domain.MinRating + domain.MaxRating) / 2.0
	const span = (domain.MaxRating - domain.MinRating) / 2.0

	out := make(map[string]float64, len(ratings))
	for id, r := range ratings {
		out[id] = (r - mid) / span
	}
	return out
}

func excluded(rated map[string]float64, exclude bool) map[string]bool {
	if !exclude {
		return nil
	}
	out := make(map[string]bool, len(rated))
	for id := range rated {
		out[id] = true
	}
	return out
}

// ============================================================================
// Paging
// ============================================================================

func paginate(ranked []string, q RecommendationQuery) (Recommendations, error) {
	offset, err := decodeCursor(q.Cursor)
	if err != nil {
		return Recommendations{}, err
	}
	if offset >= len(ranked) {
		return Recommendations{ItemsID: []string{}}, nil
	}

	end := min(offset+q.Amt, len(ranked))
	out := Recommendations{ItemsID: ranked[offset:end]}
	if end < len(ranked) {
		out.NextCursor = encodeCursor(end)
	}
	return out, nil
}

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, errWrongData("invalid cursor")
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, errWrongData("invalid cursor")
	}
	return offset, nil
}
