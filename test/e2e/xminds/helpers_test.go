//go:build e2e

package xminds_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and helpers for the sandbox end-to-end tests. The SDK is
 * driven against the sandbox image exactly as an application would use it.
 */

const (
	testImageName = "xminds-sandbox-test:latest"

	serviceName     = "e2e-service"
	servicePassword = "E2e-Passw0rd!"
	databaseID      = "e2e-db"
	refreshToken    = "e2e-bootstrap-refresh-token"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building sandbox Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up sandbox Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/sandbox/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// setupSandbox starts the sandbox with the given extra environment and
// returns its base URL.
func setupSandbox(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	base := map[string]string{
		"SANDBOX_SERVICE_NAME":            serviceName,
		"SANDBOX_SERVICE_PASSWORD":        servicePassword,
		"SANDBOX_DATABASE_ID":             databaseID,
		"SANDBOX_DATABASE_NAME":           "End to end",
		"SANDBOX_BOOTSTRAP_REFRESH_TOKEN": refreshToken,
		"ENV":                             "test",
		"LOG_LEVEL":                       "info",
		"LOG_FORMAT":                      "json",
		// Tests fire requests quickly; lift the per-database limits.
		"RATELIMIT_API_REQUESTS":   "100000",
		"RATELIMIT_API_BURST":      "10000",
		"RATELIMIT_BULK_REQUESTS":  "100000",
		"RATELIMIT_BULK_BURST":     "10000",
		"RATELIMIT_LOGIN_REQUESTS": "1000",
		"RATELIMIT_LOGIN_BURST":    "1000",
	}
	for k, v := range env {
		base[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          base,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

func newClient(baseURL, token string) *xminds.Client {
	return xminds.NewClient(xminds.Config{Host: baseURL, RefreshToken: token})
}

func requireKind(t *testing.T, err error, k xminds.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, xminds.IsKind(err, k), "want %s, got %v", k.Name(), err)
}
