package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	sandboxhttp "github.com/aussiebroadwan/xminds/internal/sandbox/http"
	"github.com/aussiebroadwan/xminds/internal/sandbox/service"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store/drivers/sqlite"
	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/stretchr/testify/require"
)

const (
	testDB           = "db-test"
	testAccount      = "svc"
	testPassword     = "s3cret"
	testRefreshToken = "sandbox-refresh-token"
	testIssuer       = "https://sandbox.test"
)

// clock is shared by the signer side and the verifier, and read from server
// goroutines.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sandbox struct {
	srv   *httptest.Server
	clock *clock
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "sandbox.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	boot := &service.BootstrapService{
		Store:        st,
		AccountName:  testAccount,
		Password:     testPassword,
		DatabaseID:   testDB,
		DatabaseName: "Test DB",
		RefreshToken: testRefreshToken,
	}
	require.NoError(t, boot.Ensure(ctx))

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	clk := &clock{t: time.Now()}
	verifier := jwtx.NewVerifierEdDSA(keys, testIssuer, nil).WithClock(clk.Now)

	router := sandboxhttp.NewRouter(keys, verifier, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     testIssuer,
		AccessTTL:  time.Minute,
		RefreshTTL: 24 * time.Hour,
		Now:        clk.Now,
	}
	router.CatalogService = &service.CatalogService{Store: st}
	router.RatingService = &service.RatingService{Store: st}
	router.RecommendationService = &service.RecommendationService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &sandbox{srv: srv, clock: clk}
}

func (s *sandbox) client(refreshToken string) *xminds.Client {
	return xminds.NewClient(xminds.Config{Host: s.srv.URL, RefreshToken: refreshToken})
}

func requireKind(t *testing.T, err error, k xminds.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, xminds.IsKind(err, k), "want %s, got %v", k.Name(), err)
}

func TestCatalogRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newSandbox(t).client(testRefreshToken)

	// The first call logs in with the bootstrap refresh token.
	require.NoError(t, c.CreateOrUpdateItem(ctx, "alien", xminds.Properties{"genre": "scifi", "year": 1979}))
	require.NotEmpty(t, c.BearerToken())
	require.NotEqual(t, testRefreshToken, c.RefreshToken())

	require.NoError(t, c.CreateOrUpdateUser(ctx, "u1", xminds.Properties{"age": 31}))

	item, err := c.GetItem(ctx, "alien")
	require.NoError(t, err)
	require.Equal(t, "alien", item.Item["item_id"])
	require.Equal(t, "scifi", item.Item["genre"])
	require.EqualValues(t, 1979, item.Item["year"])

	user, err := c.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", user.User["user_id"])

	users, err := c.ListUsers(ctx, []string{"nobody", "u1"})
	require.NoError(t, err)
	require.Len(t, users.Users, 1)

	items, err := c.ListItems(ctx, []string{"alien"})
	require.NoError(t, err)
	require.Len(t, items.Items, 1)

	_, err = c.GetItem(ctx, "missing")
	requireKind(t, err, xminds.KindNotFound)
	var apiErr *xminds.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "missing", apiErr.Detail["key"])
}

func TestRatingsAndInteractions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newSandbox(t).client(testRefreshToken)

	require.NoError(t, c.CreateOrUpdateRating(ctx, "u1", "alien", 9, 1_700_000_000.5))
	requireKind(t, c.CreateOrUpdateRating(ctx, "u1", "alien", 11, 0), xminds.KindWrongData)

	require.NoError(t, c.CreateOrUpdateUserRatingsBulk(ctx, "u1", []xminds.Rating{
		{ItemID: "heat", Rating: 6, Timestamp: 1_700_000_100},
		{ItemID: "fargo", Rating: 7, Timestamp: 1_700_000_200},
	}))

	page, err := c.ListUserRatings(ctx, "u1", 1, 2)
	require.NoError(t, err)
	require.True(t, page.HasNext)
	require.Equal(t, 2, page.NextPage)
	require.Equal(t, "fargo", page.Ratings[0].ItemID)

	page, err = c.ListUserRatings(ctx, "u1", 2, 2)
	require.NoError(t, err)
	require.False(t, page.HasNext)
	require.Len(t, page.Ratings, 1)
	require.Equal(t, "alien", page.Ratings[0].ItemID)
	require.InDelta(t, 1_700_000_000.5, page.Ratings[0].Timestamp, 1e-3)

	require.NoError(t, c.DeleteRating(ctx, "u1", "heat"))
	requireKind(t, c.DeleteRating(ctx, "u1", "heat"), xminds.KindNotFound)

	require.NoError(t, c.CreateInteraction(ctx, "u1", "cats", "purchase", 0))
	require.NoError(t, c.CreateOrUpdateUserInteractionsBulk(ctx, "u1", []xminds.Interaction{
		{ItemID: "heat", InteractionType: "click"},
	}))
	requireKind(t, c.CreateInteraction(ctx, "u1", "cats", "", 0), xminds.KindWrongData)

	page, err = c.ListUserRatings(ctx, "u1", 0, 0)
	require.NoError(t, err)
	got := map[string]float64{}
	for _, r := range page.Ratings {
		got[r.ItemID] = r.Rating
	}
	require.Equal(t, map[string]float64{"alien": 9, "fargo": 7, "cats": 10, "heat": 6}, got)

	require.NoError(t, c.DeleteUserRatings(ctx, "u1"))
	page, err = c.ListUserRatings(ctx, "u1", 0, 0)
	require.NoError(t, err)
	require.Empty(t, page.Ratings)
}

func TestRecommendations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newSandbox(t).client(testRefreshToken)

	for id, genre := range map[string]string{"alien": "scifi", "aliens": "scifi", "heat": "crime", "fargo": "crime"} {
		require.NoError(t, c.CreateOrUpdateItem(ctx, id, xminds.Properties{"genre": genre}))
	}
	require.NoError(t, c.CreateOrUpdateUserRatingsBulk(ctx, "a", []xminds.Rating{
		{ItemID: "alien", Rating: 10}, {ItemID: "aliens", Rating: 9},
	}))
	require.NoError(t, c.CreateOrUpdateUserRatingsBulk(ctx, "b", []xminds.Rating{
		{ItemID: "alien", Rating: 9}, {ItemID: "aliens", Rating: 10}, {ItemID: "heat", Rating: 2},
	}))
	require.NoError(t, c.CreateOrUpdateRating(ctx, "c", "alien", 8, 0))

	rec, err := c.GetRecommendationsItemToItems(ctx, "alien", xminds.RecommendationOptions{})
	require.NoError(t, err)
	require.Equal(t, "aliens", rec.ItemsID[0])
	require.NotContains(t, rec.ItemsID, "alien")

	rec, err = c.GetRecommendationsUserToItems(ctx, "c", xminds.RecommendationOptions{
		Amt:               1,
		ExcludeRatedItems: true,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"aliens"}, rec.ItemsID)
	require.NotEmpty(t, rec.NextCursor)

	next, err := c.GetRecommendationsUserToItems(ctx, "c", xminds.RecommendationOptions{
		Amt:               1,
		Cursor:            rec.NextCursor,
		ExcludeRatedItems: true,
	})
	require.NoError(t, err)
	require.Len(t, next.ItemsID, 1)
	require.NotEqual(t, "aliens", next.ItemsID[0])

	rec, err = c.GetRecommendationsUserToItems(ctx, "stranger", xminds.RecommendationOptions{
		Filters: []xminds.Filter{{PropertyName: "genre", Op: "eq", Value: "crime"}},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"heat", "fargo"}, rec.ItemsID)

	rec, err = c.GetRecommendationsSessionToItems(ctx, xminds.SessionOptions{
		Amt:               1,
		Ratings:           []xminds.Rating{{ItemID: "aliens", Rating: 10}},
		ExcludeRatedItems: true,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"alien"}, rec.ItemsID)

	rec, err = c.GetPrecomputedRecommendationsUserToItems(ctx, "c", xminds.PrecomputedOptions{Amt: 2})
	require.NoError(t, err)
	require.Len(t, rec.ItemsID, 2)
	require.NotContains(t, rec.ItemsID, "alien")
	require.Empty(t, rec.NextCursor)

	rec, err = c.GetPrecomputedRecommendationsItemToItems(ctx, "aliens", xminds.PrecomputedOptions{})
	require.NoError(t, err)
	require.Equal(t, "alien", rec.ItemsID[0])

	_, err = c.GetRecommendationsItemToItems(ctx, "nope", xminds.RecommendationOptions{})
	requireKind(t, err, xminds.KindNotFound)
	_, err = c.GetRecommendationsUserToItems(ctx, "c", xminds.RecommendationOptions{
		Filters: []xminds.Filter{{PropertyName: "genre", Op: "like", Value: "x"}},
	})
	requireKind(t, err, xminds.KindWrongData)
}

func TestExpiredAccessTokenIsRefreshed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sb := newSandbox(t)
	c := sb.client(testRefreshToken)

	require.NoError(t, c.CreateOrUpdateItem(ctx, "alien", nil))
	firstBearer, firstRefresh := c.BearerToken(), c.RefreshToken()

	sb.clock.Advance(2 * time.Minute)

	_, err := c.GetItem(ctx, "alien")
	require.NoError(t, err)
	require.NotEqual(t, firstBearer, c.BearerToken())
	require.NotEqual(t, firstRefresh, c.RefreshToken())

	// A stale copy of the rotated refresh token is rejected and takes the
	// chain down with it.
	stale := sb.client(firstRefresh)
	_, err = stale.GetItem(ctx, "alien")
	requireKind(t, err, xminds.KindAuth)

	sb.clock.Advance(2 * time.Minute)
	_, err = c.GetItem(ctx, "alien")
	requireKind(t, err, xminds.KindAuth)
}

func TestLoginService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sb := newSandbox(t)

	c := sb.client("")
	resp, err := c.LoginService(ctx, testAccount, testPassword, testDB, "")
	require.NoError(t, err)
	require.Equal(t, testDB, resp.Database.ID)
	require.Equal(t, "Test DB", resp.Database.Name)
	require.Equal(t, resp.RefreshToken, c.RefreshToken())

	_, err = sb.client("").LoginService(ctx, testAccount, "wrong", testDB, "")
	requireKind(t, err, xminds.KindAuth)
	_, err = sb.client("").LoginService(ctx, testAccount, testPassword, "other-db", "")
	requireKind(t, err, xminds.KindNotFound)

	// Frontend user tokens only reach their own user.
	fe := sb.client("")
	_, err = fe.LoginService(ctx, testAccount, testPassword, testDB, "u1")
	require.NoError(t, err)
	require.NoError(t, fe.CreateOrUpdateRating(ctx, "u1", "alien", 8, 0))
	requireKind(t, fe.CreateOrUpdateRating(ctx, "u2", "alien", 8, 0), xminds.KindForbidden)
}

func TestMissingRefreshToken(t *testing.T) {
	t.Parallel()
	c := newSandbox(t).client("")
	_, err := c.GetItem(context.Background(), "alien")
	requireKind(t, err, xminds.KindWrongData)
	require.Empty(t, c.BearerToken())
}

func decodeError(t *testing.T, resp *http.Response) *xminds.Error {
	t.Helper()
	var payload xminds.ErrorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return xminds.Classify(payload)
}

func TestRawErrors(t *testing.T) {
	t.Parallel()
	sb := newSandbox(t)

	t.Run("method not allowed", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPatch, sb.srv.URL+"/items/alien/", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		apiErr := decodeError(t, resp)
		require.Equal(t, xminds.KindMethodNotAllowed, apiErr.Kind)
		require.Equal(t, "Method PATCH not allowed", apiErr.Message)
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(sb.srv.URL + "/nowhere/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.Equal(t, xminds.KindNotFound, decodeError(t, resp).Kind)
	})

	t.Run("missing bearer", func(t *testing.T) {
		resp, err := http.Get(sb.srv.URL + "/items/alien/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, xminds.KindAuth, decodeError(t, resp).Kind)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(sb.srv.URL+"/login/refresh-token/", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, xminds.KindWrongData, decodeError(t, resp).Kind)
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()
	sb := newSandbox(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := http.Get(sb.srv.URL + path)
		require.NoError(t, err)

		var health sandboxhttp.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Equal(t, "ok", health.Status)
		require.Equal(t, "test", health.Version)
	}
}
