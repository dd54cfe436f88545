// Package cli implements the xminds command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/aussiebroadwan/xminds/pkg/slogx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/spf13/cobra"
)

// app holds the state shared by every command of one invocation.
type app struct {
	version string
	getenv  lookupFunc
	stdin   *os.File

	configPath   string
	envFile      string
	host         string
	userAgent    string
	refreshToken string
	logLevel     string
	timeout      time.Duration

	cfg          Config
	initialToken string
	tokenSeed    string
	logger       *slog.Logger
	client       *xminds.Client
}

// NewRootCommand builds the xminds command tree.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(&app{version: version, getenv: os.Getenv, stdin: os.Stdin})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "xminds",
		Short: "Command-line client for the xminds recommendation API",
		Long: `xminds talks to a recommendation API with a long-lived refresh token.

The refresh token is read from the config file, XMINDS_REFRESH_TOKEN or
--refresh-token. The API rotates it on every login, and the rotated token is
written back to the config file after each command. While XMINDS_REFRESH_TOKEN
still holds the token the stored one was rotated from, the stored one is used.`,
		Version:           version(a),
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", DefaultConfigPath, "Config file path")
	flags.StringVar(&a.envFile, "env-file", ".env", "Dotenv file read for XMINDS_* variables")
	flags.StringVar(&a.host, "host", "", "API base URL (default "+xminds.DefaultHost+")")
	flags.StringVar(&a.userAgent, "user-agent", "", "User-Agent sent with every request")
	flags.StringVar(&a.refreshToken, "refresh-token", "", "Refresh token used to log in")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level written to stderr (debug, info, warn, error)")
	flags.DurationVar(&a.timeout, "timeout", xminds.DefaultTimeout, "Timeout of a single request")

	root.AddCommand(newLoginCommand(a))
	root.AddCommand(newCatalogCommand(a, usersCatalog))
	root.AddCommand(newCatalogCommand(a, itemsCatalog))
	root.AddCommand(newRatingsCommand(a))
	root.AddCommand(newInteractionsCommand(a))
	root.AddCommand(newRecommendCommand(a))
	root.AddCommand(newStatusCommand(a))

	return root
}

func version(a *app) string {
	if a.version == "" {
		return "dev"
	}
	return a.version
}

// setup resolves the configuration (file, then dotenv and environment, then
// flags) and builds the logger and the API client.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = slogx.New(slogx.Config{
		Service: "xminds",
		Version: version(a),
		Level:   a.logLevel,
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})

	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lookup, err := envLookup(a.getenv, a.envFile)
	if err != nil {
		return err
	}
	cfg = cfg.overlayEnv(lookup)

	if a.host != "" {
		cfg.Host = a.host
	}
	if a.userAgent != "" {
		cfg.UserAgent = a.userAgent
	}
	// A flag token is used as given, even when it was already rotated.
	if a.refreshToken != "" {
		cfg.RefreshToken = a.refreshToken
		cfg.TokenSeed = cryptox.FingerprintToken(a.refreshToken)
	}
	if cfg.Host == "" {
		cfg.Host = xminds.DefaultHost
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "xminds-cli/" + version(a)
	}

	a.initialToken = cfg.RefreshToken
	a.tokenSeed = cfg.TokenSeed
	a.client = xminds.NewClient(xminds.Config{
		Host:         cfg.Host,
		UserAgent:    userAgent,
		RefreshToken: cfg.RefreshToken,
		HTTPClient:   &http.Client{Transport: slogx.NewTransport(nil, a.logger)},
		Timeout:      a.timeout,
		Logger:       a.logger,
	})
	a.logger.Debug("client configured", "host", cfg.Host, "has_refresh_token", cfg.RefreshToken != "")
	return nil
}

// withClient runs fn and then persists the refresh token the client ends up
// holding, whether or not fn succeeded: a login may rotate the token before
// the operation itself fails.
func (a *app) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *xminds.Client) error) error {
	ctx := slogx.WithContext(cmd.Context(), a.logger)
	runErr := fn(ctx, a.client)
	return errors.Join(runErr, a.persistRefreshToken())
}

// persistRefreshToken writes a rotated refresh token back to the config file,
// along with the seed it descends from. Only the token changes; values that
// came from the environment or flags are not written.
func (a *app) persistRefreshToken() error {
	token := a.client.RefreshToken()
	if token == "" || token == a.initialToken {
		return nil
	}

	cfg := a.cfg
	cfg.RefreshToken = token
	cfg.TokenSeed = a.tokenSeed
	if err := SaveConfig(a.configPath, cfg); err != nil {
		return fmt.Errorf("save rotated refresh token: %w", err)
	}
	a.cfg = cfg
	a.initialToken = token
	a.logger.Debug("refresh token saved", "path", a.configPath)
	return nil
}
