package cli

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/spf13/cobra"
)

var errNoRefreshToken = errors.New("no refresh token: use --refresh-token, --prompt, XMINDS_REFRESH_TOKEN or `xminds login service`")

type loginOutput struct {
	Database       *xminds.Database `json:"database,omitempty"`
	TokenExpiresAt *time.Time       `json:"token_expires_at,omitempty"`
}

func newLoginOutput(resp *xminds.LoginResponse) loginOutput {
	out := loginOutput{Database: resp.Database}
	if exp, ok := jwtx.PeekExpiry(resp.Token); ok {
		out.TokenExpiresAt = &exp
	}
	return out
}

func newLoginCommand(a *app) *cobra.Command {
	var prompt bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a refresh token and store the rotated one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var token string
			if prompt {
				t, err := a.promptSecret(cmd.ErrOrStderr(), "Refresh token: ")
				if err != nil {
					return err
				}
				token = t
			}
			if token == "" && a.client.RefreshToken() == "" {
				return errNoRefreshToken
			}

			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				resp, err := c.LoginRefreshToken(ctx, token)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), newLoginOutput(resp))
			})
		},
	}
	cmd.Flags().BoolVar(&prompt, "prompt", false, "Read the refresh token from the terminal")

	cmd.AddCommand(newLoginServiceCommand(a))
	return cmd
}

func newLoginServiceCommand(a *app) *cobra.Command {
	var (
		name         string
		password     string
		databaseID   string
		frontendUser string
		prompt       bool
	)

	cmd := &cobra.Command{
		Use:   "service",
		Short: "Log in as a service account bound to one database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if prompt {
				p, err := a.promptSecret(cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			if password == "" {
				return errors.New("a password is required: use --password or --prompt")
			}

			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				resp, err := c.LoginService(ctx, name, password, databaseID, frontendUser)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), newLoginOutput(resp))
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "Service account name")
	flags.StringVar(&password, "password", "", "Service account password")
	flags.StringVar(&databaseID, "db", "", "Database id")
	flags.StringVar(&frontendUser, "frontend-user", "", "Act on behalf of this user")
	flags.BoolVar(&prompt, "prompt", false, "Read the password from the terminal")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}
