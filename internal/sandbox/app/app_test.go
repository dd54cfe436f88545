package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	pepperFile := filepath.Join(dir, "pepper")
	require.NoError(t, os.WriteFile(pepperFile, []byte("pepper\n"), 0o600))

	return Config{
		Issuer:               "xminds-sandbox",
		AccessTTL:            time.Minute,
		RefreshTTL:           time.Hour,
		SigningKey:           filepath.Join(dir, "keys", "signing.pem"),
		PepperFile:           pepperFile,
		DatabaseFile:         filepath.Join(dir, "sandbox.db"),
		ServiceName:          "svc",
		ServicePassword:      "pw",
		DatabaseID:           "db-1",
		RefreshToken:         "boot",
		LogLevel:             "error",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestApplicationServesTheSDK(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	t.Cleanup(func() { _ = application.Close() })

	ctx := context.Background()
	c := xminds.NewClient(xminds.Config{Host: srv.URL, RefreshToken: "boot"})
	require.NoError(t, c.CreateOrUpdateRating(ctx, "u1", "i1", 7, 0))

	login := xminds.NewClient(xminds.Config{Host: srv.URL})
	resp, err := login.LoginService(ctx, "svc", "pw", "db-1", "")
	require.NoError(t, err)
	require.Equal(t, "db-1", resp.Database.Name)

	// The key file was created and is reused on the next start.
	pemKey, err := os.ReadFile(cfg.SigningKey)
	require.NoError(t, err)
	kid1, err := keyID(pemKey)
	require.NoError(t, err)
	kid2, err := keyID(pemKey)
	require.NoError(t, err)
	require.Equal(t, kid1, kid2)
}

func TestNewFailsOnMissingPepperFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.PepperFile = filepath.Join(t.TempDir(), "missing")

	_, err := New(cfg)
	require.Error(t, err)
}
