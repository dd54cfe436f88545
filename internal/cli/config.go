package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the persisted CLI configuration.
type Config struct {
	Host         string `toml:"host,omitempty"`
	UserAgent    string `toml:"user_agent,omitempty"`
	RefreshToken string `toml:"refresh_token,omitempty"`

	// TokenSeed is the fingerprint of the token handed in through the
	// environment or a flag that RefreshToken was rotated from.
	TokenSeed string `toml:"refresh_token_seed,omitempty"`
}

const (
	// DefaultConfigPath is where the CLI keeps its configuration.
	DefaultConfigPath = "~/.config/xminds/config.toml"

	envHost         = "XMINDS_HOST"
	envUserAgent    = "XMINDS_USER_AGENT"
	envRefreshToken = "XMINDS_REFRESH_TOKEN"
)

// LoadConfig reads the config file at path. A missing file yields an empty
// Config.
func LoadConfig(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	cfg.RefreshToken = strings.TrimSpace(cfg.RefreshToken)
	cfg.TokenSeed = strings.TrimSpace(cfg.TokenSeed)
	return cfg, nil
}

// SaveConfig writes cfg to path with owner-only permissions, since it holds a
// refresh token.
func SaveConfig(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	bytes, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// lookupFunc resolves an environment variable.
type lookupFunc func(key string) string

// envLookup prefers the process environment and falls back to the values of
// a dotenv file, which never override variables that are already set.
func envLookup(getenv lookupFunc, dotenvPath string) (lookupFunc, error) {
	values := map[string]string{}
	if dotenvPath != "" {
		read, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			values = read
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
	}

	return func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(values[key])
	}, nil
}

// overlayEnv replaces config values with the XMINDS_* environment variables
// that are set. XMINDS_REFRESH_TOKEN is skipped once the stored token was
// rotated from it, since the API has already spent it.
func (c Config) overlayEnv(lookup lookupFunc) Config {
	if v := lookup(envHost); v != "" {
		c.Host = v
	}
	if v := lookup(envUserAgent); v != "" {
		c.UserAgent = v
	}
	if v := lookup(envRefreshToken); v != "" {
		c = c.withRefreshToken(v)
	}
	return c
}

// withRefreshToken switches to an externally supplied refresh token unless
// the stored one descends from it.
func (c Config) withRefreshToken(token string) Config {
	if c.rotatedFrom(token) {
		return c
	}
	c.RefreshToken = token
	c.TokenSeed = cryptox.FingerprintToken(token)
	return c
}

// rotatedFrom reports whether the stored refresh token was rotated from token.
func (c Config) rotatedFrom(token string) bool {
	return c.RefreshToken != "" && c.TokenSeed != "" && c.TokenSeed == cryptox.FingerprintToken(token)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(DefaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
