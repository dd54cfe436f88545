package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/domain"
	"github.com/aussiebroadwan/xminds/internal/sandbox/store/drivers/sqlite"
	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/stretchr/testify/require"
)

const (
	testDB       = "db-test"
	testAccount  = "svc"
	testPassword = "s3cret"
	testIssuer   = "https://sandbox.test"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "sandbox.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

// clock is a settable time source.
type clock struct{ t time.Time }

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type authFixture struct {
	store    *sqlite.Store
	auth     *AuthService
	verifier *jwtx.EdDSAVerifier
	clock    *clock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctx := context.Background()

	st := newTestStore(t)
	boot := &BootstrapService{
		Store:        st,
		AccountName:  testAccount,
		Password:     testPassword,
		DatabaseID:   testDB,
		DatabaseName: "test database",
	}
	require.NoError(t, boot.Ensure(ctx))

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	clk := newClock(time.Now())
	return &authFixture{
		store: st,
		auth: &AuthService{
			Store:      st,
			Signer:     signer,
			Issuer:     testIssuer,
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
			Now:        clk.Now,
		},
		verifier: jwtx.NewVerifierEdDSA(keys, testIssuer, nil).WithClock(clk.Now),
		clock:    clk,
	}
}

func seedDatabase(t *testing.T, st *sqlite.Store) {
	t.Helper()
	require.NoError(t, st.Databases().CreateDatabase(context.Background(), domain.Database{ID: testDB, Name: "test"}))
}

func requireKind(t *testing.T, err error, k xminds.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, xminds.IsKind(err, k), "want %s, got %v", k.Name(), err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
