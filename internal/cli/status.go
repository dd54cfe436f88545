package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/jwtx"
	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(16)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type statusReport struct {
	Host            string
	HasRefreshToken bool
	Database        *xminds.Database
	TokenExpiresAt  time.Time
	LoginErr        error
}

func (r statusReport) render(now time.Time) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	rows := []string{row("Host", r.Host)}
	if !r.HasRefreshToken {
		rows = append(rows, row("Refresh token", warnStyle.Render("not configured")))
		return strings.Join(rows, "\n")
	}
	rows = append(rows, row("Refresh token", okStyle.Render("configured")))

	if r.LoginErr != nil {
		rows = append(rows, row("Login", errStyle.Render(r.LoginErr.Error())))
		return strings.Join(rows, "\n")
	}
	rows = append(rows, row("Login", okStyle.Render("ok")))
	if r.Database != nil {
		rows = append(rows, row("Database", fmt.Sprintf("%s (%s)", r.Database.Name, r.Database.ID)))
	}
	if !r.TokenExpiresAt.IsZero() {
		left := r.TokenExpiresAt.Sub(now).Round(time.Second)
		rows = append(rows, row("Token expires", fmt.Sprintf("%s (in %s)", r.TokenExpiresAt.Format(time.RFC3339), left)))
	}
	return strings.Join(rows, "\n")
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the configured host and check that the refresh token logs in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := statusReport{
				Host:            a.client.Host(),
				HasRefreshToken: a.client.RefreshToken() != "",
			}

			err := a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				if !report.HasRefreshToken {
					return nil
				}
				resp, err := c.LoginRefreshToken(ctx, "")
				if err != nil {
					report.LoginErr = err
					return nil
				}
				report.Database = resp.Database
				if exp, ok := jwtx.PeekExpiry(c.BearerToken()); ok {
					report.TokenExpiresAt = exp
				}
				return nil
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.render(time.Now()))
			return err
		},
	}
}
