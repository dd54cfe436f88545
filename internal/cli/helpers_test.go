package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	sandboxapp "github.com/aussiebroadwan/xminds/internal/sandbox/app"
	"github.com/aussiebroadwan/xminds/pkg/httpx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/stretchr/testify/require"
)

const (
	bootToken   = "boot"
	testDB      = "db-1"
	svcName     = "svc"
	svcPassword = "pw"
)

func TestMain(m *testing.M) {
	// Every command logs in once; the tests run far more commands than the
	// production login burst allows.
	httpx.LoginLimit = httpx.RateLimitConfig{RequestsPerWindow: 6000, Window: time.Minute, Burst: 1000}
	os.Exit(m.Run())
}

// newSandbox starts a sandbox server with a bootstrap refresh token.
func newSandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	pepperFile := filepath.Join(dir, "pepper")
	require.NoError(t, os.WriteFile(pepperFile, []byte("pepper"), 0o600))

	application, err := sandboxapp.New(sandboxapp.Config{
		Issuer:               "xminds-sandbox",
		AccessTTL:            time.Minute,
		RefreshTTL:           time.Hour,
		SigningKey:           filepath.Join(dir, "signing.pem"),
		PepperFile:           pepperFile,
		DatabaseFile:         filepath.Join(dir, "sandbox.db"),
		ServiceName:          svcName,
		ServicePassword:      svcPassword,
		DatabaseID:           testDB,
		RefreshToken:         bootToken,
		LogLevel:             "error",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Close()
	})
	return srv.URL
}

// cliEnv runs commands against one config directory and a fake environment.
type cliEnv struct {
	t   *testing.T
	dir string
	env map[string]string
}

func newCLI(t *testing.T, host string) *cliEnv {
	t.Helper()
	return &cliEnv{
		t:   t,
		dir: t.TempDir(),
		env: map[string]string{envHost: host},
	}
}

func (e *cliEnv) configPath() string { return filepath.Join(e.dir, "config.toml") }

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()

	a := &app{
		version: "test",
		getenv:  func(key string) string { return e.env[key] },
		stdin:   os.Stdin,
	}
	root := newRootCommand(a)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{
		"--config", e.configPath(),
		"--env-file", filepath.Join(e.dir, ".env"),
		"--log-level", "error",
	}, args...))

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

// mustRun runs a command that has to succeed and decodes its JSON output into
// v when v is not nil.
func (e *cliEnv) mustRun(v any, args ...string) {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "xminds %v", args)
	if v != nil {
		require.NoError(e.t, json.Unmarshal([]byte(out), v), out)
	}
}

func (e *cliEnv) storedToken() string {
	e.t.Helper()
	cfg, err := LoadConfig(e.configPath())
	require.NoError(e.t, err)
	return cfg.RefreshToken
}

func (e *cliEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func requireKind(t *testing.T, err error, k xminds.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, xminds.IsKind(err, k), "want %s, got %v", k.Name(), err)
}
