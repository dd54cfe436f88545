package xminds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestClassify_KindTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   Kind
		status int
	}{
		{"AuthError", KindAuth, 401},
		{"DuplicatedError", KindDuplicated, 400},
		{"ForbiddenError", KindForbidden, 403},
		{"JwtTokenExpired", KindTokenExpired, 401},
		{"MethodNotAllowed", KindMethodNotAllowed, 405},
		{"NotFoundError", KindNotFound, 404},
		{"RefreshTokenExpired", KindRefreshTokenExpired, 401},
		{"ServerUnavailable", KindServerUnavailable, 503},
		{"TooManyRequests", KindTooManyRequests, 429},
		{"WrongData", KindWrongData, 400},
		{"ServerError", KindServer, 500},
		{"", KindServer, 500},
		{"SomethingElse", KindServer, 500},
		{"autherror", KindServer, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(ErrorPayload{ErrorName: tt.name, Message: "boom"})
			require.Equal(t, tt.kind, err.Kind)
			require.Equal(t, tt.status, err.StatusCode)
			require.Equal(t, "boom", err.Message)
		})
	}
}

func TestClassify_StatusIgnoresPayloadCode(t *testing.T) {
	t.Parallel()

	err := Classify(ErrorPayload{ErrorCode: 418, ErrorName: "NotFoundError"})
	require.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestClassify_UnknownNamesDegradeToServer(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Filter(func(s string) bool {
			_, known := kindsByName[s]
			return !known
		}).Draw(t, "name")
		err := Classify(ErrorPayload{ErrorName: name})
		if err.Kind != KindServer || err.StatusCode != 500 {
			t.Fatalf("name %q classified as %v/%d", name, err.Kind, err.StatusCode)
		}
	})
}

func TestClassify_MessagePlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		detail  ErrorData
		want    string
	}{
		{"single key", "bad {key}", ErrorData{"key": "x"}, "bad x"},
		{"no detail", "bad {key}", nil, "bad {key}"},
		{"missing field stays literal", "{error} on {key}", ErrorData{"key": "user_id"}, "{error} on user_id"},
		{"all fields", "{error}/{type}/{key}/{method}",
			ErrorData{"error": "e", "type": "t", "key": "k", "method": "PATCH"}, "e/t/k/PATCH"},
		{"repeated placeholder", "{key} and {key}", ErrorData{"key": "a"}, "a and a"},
		{"non-string value", "amt {key}", ErrorData{"key": 3}, "amt 3"},
		{"unknown placeholder untouched", "{other}", ErrorData{"other": "x"}, "{other}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(ErrorPayload{ErrorName: "WrongData", Message: tt.message, ErrorData: tt.detail})
			require.Equal(t, tt.want, err.Message)
			require.Equal(t, tt.detail, err.Detail)
		})
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("get user: %w", Classify(ErrorPayload{ErrorName: "NotFoundError", Message: "no user"}))

	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrAuth)
	require.True(t, IsKind(err, KindNotFound))
	require.False(t, IsKind(err, KindTokenExpired))
	require.False(t, IsKind(errors.New("plain"), KindServer))
	require.False(t, IsKind(nil, KindServer))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "xminds: NotFoundError (404): no user", apiErr.Error())
}

func TestError_WriteErrorRoundTrip(t *testing.T) {
	t.Parallel()

	src := NewError(KindMethodNotAllowed, "method {method} not allowed", ErrorData{"method": "PATCH"})
	require.Equal(t, "method PATCH not allowed", src.Message)

	rec := httptest.NewRecorder()
	src.WriteError(rec)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := parseErrorResponse(rec.Result(), rec.Body.Bytes())
	require.Equal(t, src.Kind, got.Kind)
	require.Equal(t, src.Message, got.Message)
	require.Equal(t, "PATCH", got.Detail["method"])
}

func TestParseErrorResponse_NonPayloadBody(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "<html>bad gateway</html>", "{}", "[1,2]"} {
		resp := &http.Response{StatusCode: http.StatusBadGateway}
		err := parseErrorResponse(resp, []byte(body))
		require.Equal(t, KindServer, err.Kind, body)
		require.Equal(t, "HTTP 502: Bad Gateway", err.Message, body)
	}
}

func TestParseErrorResponse_MalformedFieldsKeepTheKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		message string
		detail  ErrorData
	}{
		{"string error_code", `{"error_code":"401","error_name":"JwtTokenExpired","message":"expired"}`, "expired", nil},
		{"string error_data", `{"error_name":"JwtTokenExpired","message":"expired","error_data":"jwt"}`, "expired", nil},
		{"array error_data", `{"error_name":"JwtTokenExpired","message":"{key}","error_data":[1]}`, "{key}", nil},
		{"numeric message", `{"error_name":"JwtTokenExpired","message":7,"error_data":{"key":"k"}}`, "", ErrorData{"key": "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusUnauthorized}
			err := parseErrorResponse(resp, []byte(tt.body))
			require.Equal(t, KindTokenExpired, err.Kind)
			require.Equal(t, http.StatusUnauthorized, err.StatusCode)
			require.Equal(t, tt.message, err.Message)
			require.Equal(t, tt.detail, err.Detail)
		})
	}
}

func TestConnectionError(t *testing.T) {
	t.Parallel()

	err := &ConnectionError{Method: "GET", URL: "http://x/users/1/", Err: context.DeadlineExceeded}
	require.True(t, err.Timeout())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, IsKind(err, KindTokenExpired))

	canceled := &ConnectionError{Method: "GET", URL: "http://x/", Err: context.Canceled}
	require.False(t, canceled.Timeout())
}

func TestKind_Names(t *testing.T) {
	t.Parallel()

	for k, info := range kindTable {
		require.Equal(t, k, ParseKind(info.name))
		require.Equal(t, info.name, k.Name())
		require.Equal(t, info.label, k.String())
	}
	require.Equal(t, "ServerError", Kind(99).Name())
}
