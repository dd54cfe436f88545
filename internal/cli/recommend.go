package cli

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// recommendFlags are the query options shared by the live recommendations.
type recommendFlags struct {
	amt     int
	cursor  string
	filters []string
}

func (f *recommendFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.amt, "amt", 0, "Number of items (default: server default)")
	fs.StringVar(&f.cursor, "cursor", "", "Cursor returned by the previous page")
	fs.StringArrayVar(&f.filters, "filter", nil, "Item property filter name:op[:value], repeatable")
}

func (f *recommendFlags) options() (xminds.RecommendationOptions, error) {
	filters, err := parseFilters(f.filters)
	if err != nil {
		return xminds.RecommendationOptions{}, err
	}
	return xminds.RecommendationOptions{Amt: f.amt, Cursor: f.cursor, Filters: filters}, nil
}

func newRecommendCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Get item recommendations",
	}
	cmd.AddCommand(
		newRecommendItemsCommand(a),
		newRecommendUserCommand(a),
		newRecommendSessionCommand(a),
		newRecommendPrecomputedCommand(a),
	)
	return cmd
}

func (a *app) printRecommendations(
	cmd *cobra.Command,
	call func(ctx context.Context, c *xminds.Client) (*xminds.RecommendationsResponse, error),
) error {
	return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
		resp, err := call(ctx, c)
		if err != nil {
			return err
		}
		if resp.ItemsID == nil {
			resp.ItemsID = []string{}
		}
		return printJSON(cmd.OutOrStdout(), resp)
	})
}

func newRecommendItemsCommand(a *app) *cobra.Command {
	var flags recommendFlags

	cmd := &cobra.Command{
		Use:   "items ITEM",
		Short: "Items similar to ITEM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return a.printRecommendations(cmd, func(ctx context.Context, c *xminds.Client) (*xminds.RecommendationsResponse, error) {
				return c.GetRecommendationsItemToItems(ctx, args[0], opts)
			})
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newRecommendUserCommand(a *app) *cobra.Command {
	var (
		flags        recommendFlags
		excludeRated bool
	)

	cmd := &cobra.Command{
		Use:   "user USER",
		Short: "Items recommended for USER",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			opts.ExcludeRatedItems = excludeRated
			return a.printRecommendations(cmd, func(ctx context.Context, c *xminds.Client) (*xminds.RecommendationsResponse, error) {
				return c.GetRecommendationsUserToItems(ctx, args[0], opts)
			})
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&excludeRated, "exclude-rated", false, "Leave out items the user already rated")
	return cmd
}

func newRecommendSessionCommand(a *app) *cobra.Command {
	var (
		flags        recommendFlags
		excludeRated bool
		ratingsFile  string
		userProps    string
	)

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Items recommended for an anonymous session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			session := xminds.SessionOptions{
				Amt:               opts.Amt,
				Cursor:            opts.Cursor,
				Filters:           opts.Filters,
				ExcludeRatedItems: excludeRated,
			}
			if ratingsFile != "" {
				if err := readJSONFile(ratingsFile, &session.Ratings); err != nil {
					return err
				}
			}
			if userProps != "" {
				props, err := parseProperties(userProps)
				if err != nil {
					return err
				}
				session.UserProperties = props
			}
			return a.printRecommendations(cmd, func(ctx context.Context, c *xminds.Client) (*xminds.RecommendationsResponse, error) {
				return c.GetRecommendationsSessionToItems(ctx, session)
			})
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&excludeRated, "exclude-rated", false, "Leave out items rated in the session")
	cmd.Flags().StringVar(&ratingsFile, "ratings", "", "JSON array of the session's ratings (- for stdin)")
	cmd.Flags().StringVar(&userProps, "user-props", "", "Session user properties as a JSON object")
	return cmd
}

func newRecommendPrecomputedCommand(a *app) *cobra.Command {
	var amt int

	cmd := &cobra.Command{
		Use:       "precomputed items|user ID",
		Short:     "Precomputed recommendations for an item or a user",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"items", "user"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := xminds.PrecomputedOptions{Amt: amt}
			var call func(context.Context, string, xminds.PrecomputedOptions) (*xminds.RecommendationsResponse, error)
			switch args[0] {
			case "items":
				call = a.client.GetPrecomputedRecommendationsItemToItems
			case "user":
				call = a.client.GetPrecomputedRecommendationsUserToItems
			default:
				return fmt.Errorf("unknown target %q, want items or user", args[0])
			}
			return a.printRecommendations(cmd, func(ctx context.Context, _ *xminds.Client) (*xminds.RecommendationsResponse, error) {
				return call(ctx, args[1], opts)
			})
		},
	}
	cmd.Flags().IntVar(&amt, "amt", 0, "Number of items (default: server default)")
	return cmd
}
