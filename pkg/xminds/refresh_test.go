package xminds

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvoke_NoTokenLogsInFirst(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.setHandle(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, UserResponse{User: Properties{"user_id": "u1"}})
	})
	c := api.client()
	require.Empty(t, c.BearerToken())

	resp, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", resp.User["user_id"])

	require.Equal(t, []string{loginRoute, "GET /users/u1/"}, api.routes())

	reqs := api.recorded()
	requireJSONBody(t, `{"refresh_token":"refresh-0"}`, reqs[0].Body)
	require.Empty(t, reqs[0].Authorization)
	require.Equal(t, "Bearer tok-1", reqs[1].Authorization)

	require.Equal(t, "tok-1", c.BearerToken())
	require.Equal(t, "refresh-1", c.RefreshToken())
}

func TestInvoke_NoTokenLoginFailureSkipsOperation(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.setLogin(func(w http.ResponseWriter, r *http.Request, n int) {
		writeAPIError(w, KindRefreshTokenExpired, "refresh token expired")
	})
	c := api.client()

	_, err := c.GetItem(context.Background(), "i1")
	require.ErrorIs(t, err, ErrRefreshTokenExpired)
	require.Equal(t, []string{loginRoute}, api.routes())

	require.Empty(t, c.BearerToken())
	require.Equal(t, "refresh-0", c.RefreshToken())

	// Still NoToken: the next call tries to log in again.
	_, err = c.GetItem(context.Background(), "i1")
	require.ErrorIs(t, err, ErrRefreshTokenExpired)
	require.Equal(t, 2, api.loginCount())
}

func TestInvoke_NoTokenOperationErrorPropagates(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.setHandle(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, KindTokenExpired, "expired")
	})
	c := api.client()

	// A fresh token rejected right away is not refreshed a second time.
	_, err := c.GetUser(context.Background(), "u1")
	require.ErrorIs(t, err, ErrTokenExpired)
	require.Equal(t, []string{loginRoute, "GET /users/u1/"}, api.routes())
}

func TestInvoke_ExpiredTokenRefreshesAndRetriesOnce(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.setHandle(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-1" {
			writeAPIError(w, KindTokenExpired, "jwt expired")
			return
		}
		writeJSON(w, http.StatusOK, ItemResponse{Item: Properties{"item_id": "i1"}})
	})
	c := api.client()
	_, err := c.LoginRefreshToken(context.Background(), "")
	require.NoError(t, err)
	api.reset()

	resp, err := c.GetItem(context.Background(), "i1")
	require.NoError(t, err)
	require.Equal(t, "i1", resp.Item["item_id"])

	require.Equal(t, []string{"GET /items/i1/", loginRoute, "GET /items/i1/"}, api.routes())
	reqs := api.recorded()
	requireJSONBody(t, `{"refresh_token":"refresh-1"}`, reqs[1].Body)
	require.Equal(t, "Bearer tok-2", reqs[2].Authorization)
	require.Equal(t, "refresh-2", c.RefreshToken())
}

func TestInvoke_ExpiryWithMalformedDetailStillRefreshes(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.setHandle(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-1" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error_code":"401","error_name":"JwtTokenExpired","message":"expired","error_data":"jwt"}`))
			return
		}
		writeJSON(w, http.StatusOK, UserResponse{User: Properties{"user_id": "u1"}})
	})
	c := api.client()
	_, err := c.LoginRefreshToken(context.Background(), "")
	require.NoError(t, err)
	api.reset()

	resp, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", resp.User["user_id"])
	require.Equal(t, []string{"GET /users/u1/", loginRoute, "GET /users/u1/"}, api.routes())
}

func TestInvoke_RetryFailureIsReturnedUnchanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		retry Kind
	}{
		{"second expiry", KindTokenExpired},
		{"not found", KindNotFound},
		{"server", KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.setHandle(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") == "Bearer tok-1" {
					writeAPIError(w, KindTokenExpired, "jwt expired")
					return
				}
				writeAPIError(w, tt.retry, "retry failed")
			})
			c := api.client()
			_, err := c.LoginRefreshToken(context.Background(), "")
			require.NoError(t, err)
			api.reset()

			err = c.DeleteRating(context.Background(), "u1", "i1")
			require.True(t, IsKind(err, tt.retry))
			require.Contains(t, err.Error(), "retry failed")

			require.Equal(t, []string{
				"DELETE /users/u1/ratings/i1/",
				loginRoute,
				"DELETE /users/u1/ratings/i1/",
			}, api.routes())
		})
	}
}

func TestInvoke_ExpiredTokenLoginFailure(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.setLogin(func(w http.ResponseWriter, r *http.Request, n int) {
		if n == 1 {
			writeJSON(w, http.StatusOK, LoginResponse{Token: "tok-1", RefreshToken: "refresh-1"})
			return
		}
		writeAPIError(w, KindAuth, "refresh token revoked")
	})
	api.setHandle(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, KindTokenExpired, "jwt expired")
	})
	c := api.client()
	_, err := c.LoginRefreshToken(context.Background(), "")
	require.NoError(t, err)
	api.reset()

	err = c.DeleteUserRatings(context.Background(), "u1")
	require.ErrorIs(t, err, ErrAuth)
	require.Equal(t, []string{"DELETE /users/u1/ratings/", loginRoute}, api.routes())

	// The stale pair is kept.
	require.Equal(t, "tok-1", c.BearerToken())
	require.Equal(t, "refresh-1", c.RefreshToken())
}

func TestInvoke_OtherErrorsDoNotRefresh(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindNotFound, KindAuth, KindForbidden, KindRefreshTokenExpired, KindWrongData, KindServer} {
		t.Run(k.Name(), func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.setHandle(func(w http.ResponseWriter, r *http.Request) {
				writeAPIError(w, k, "nope")
			})
			c := api.client()
			_, err := c.LoginRefreshToken(context.Background(), "")
			require.NoError(t, err)
			api.reset()

			_, err = c.GetUser(context.Background(), "missing")
			require.True(t, IsKind(err, k))
			require.Equal(t, []string{"GET /users/missing/"}, api.routes())
		})
	}
}

func TestInvoke_TimeoutIsConnectionErrorAndNotRetried(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.setHandle(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := api.client(func(cfg *Config) { cfg.Timeout = 50 * time.Millisecond })
	_, err := c.LoginRefreshToken(context.Background(), "")
	require.NoError(t, err)
	api.reset()

	_, err = c.GetUser(context.Background(), "u1")
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.True(t, connErr.Timeout())
	require.False(t, IsKind(err, KindTokenExpired))
	require.Equal(t, 1, api.loginCount())
}

func TestInvoke_ConcurrentExpiryIsCoalesced(t *testing.T) {
	t.Parallel()

	const callers = 8
	var expired atomic.Int32

	api := newFakeAPI(t)
	api.setHandle(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-1" {
			expired.Add(1)
			writeAPIError(w, KindTokenExpired, "jwt expired")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	c := api.client()
	_, err := c.LoginRefreshToken(context.Background(), "")
	require.NoError(t, err)

	// Hold the refresh open until every caller has seen the expiry.
	api.setLogin(func(w http.ResponseWriter, r *http.Request, n int) {
		deadline := time.Now().Add(2 * time.Second)
		for expired.Load() < callers && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		time.Sleep(100 * time.Millisecond)
		writeJSON(w, http.StatusOK, LoginResponse{Token: "tok-2", RefreshToken: "refresh-2"})
	})

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = c.DeleteUserRatings(context.Background(), "u1")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 2, api.loginCount())
	require.Equal(t, "tok-2", c.BearerToken())
}

func TestInvoke_WaiterCancellationLeavesRefreshRunning(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	api := newFakeAPI(t)
	api.setLogin(func(w http.ResponseWriter, r *http.Request, n int) {
		<-release
		writeJSON(w, http.StatusOK, LoginResponse{Token: "tok-1", RefreshToken: "refresh-1"})
	})
	c := api.client()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.GetUser(ctx, "u1")
		done <- err
	}()

	require.Eventually(t, func() bool { return api.loginCount() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	err := <-done
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return c.BearerToken() == "tok-1" }, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{loginRoute}, api.routes())
}
