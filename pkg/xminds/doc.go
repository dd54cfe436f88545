/*
Package xminds provides a client for the Crossing Minds recommendation API.

# Overview

A Client holds one credential pair: a short-lived bearer token (a JWT) and a
long-lived refresh token. Authenticated methods renew the bearer token
transparently, so callers only ever supply the refresh token:

	client := xminds.NewClient(xminds.Config{
		RefreshToken: os.Getenv("XMINDS_REFRESH_TOKEN"),
	})

	// Logs in with the refresh token first, then fetches the user
	user, err := client.GetUser(ctx, "user-42")

# Token Renewal

Every authenticated call follows the same rules:

  - Without a bearer token the client logs in with its refresh token and then
    performs the call once.
  - With a bearer token the call is performed once. If the server answers
    JwtTokenExpired the client logs in again and performs the call a second
    and final time.
  - Any other failure, including a failed login, is returned unchanged.

Refresh tokens rotate on every login. Read the current one with RefreshToken
and persist it if the process needs to resume later. Concurrent calls that
discover an expired token together share one login round trip.

# Error Handling

Server failures are returned as *Error values classified by Kind. Compare
them with errors.Is against the predefined sentinels, or use IsKind:

	_, err := client.GetItem(ctx, "item-1")
	if errors.Is(err, xminds.ErrNotFound) {
		// Unknown item
	}

	var apiErr *xminds.Error
	if errors.As(err, &apiErr) {
		log.Printf("%s: %s (status %d)", apiErr.Kind.Name(), apiErr.Message, apiErr.StatusCode)
	}

Requests that never receive a response (dial failures, timeouts,
cancellation) return a *ConnectionError instead. They are never retried.

# Recommendations

Live recommendations accept paging and filters on item properties:

	recs, err := client.GetRecommendationsUserToItems(ctx, "user-42", xminds.RecommendationOptions{
		Amt:     10,
		Filters: []xminds.Filter{{PropertyName: "price", Op: "lt", Value: 20}},
	})

# Thread Safety

A Client is safe for concurrent use by multiple goroutines. The token pair is
always read and replaced as a unit.
*/
package xminds
