package cli

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/spf13/cobra"
)

// catalog binds the user and item endpoints to one set of commands.
type catalog struct {
	use  string
	noun string
	get  func(ctx context.Context, c *xminds.Client, id string) (any, error)
	put  func(ctx context.Context, c *xminds.Client, id string, props xminds.Properties) error
	list func(ctx context.Context, c *xminds.Client, ids []string) (any, error)
}

var usersCatalog = catalog{
	use:  "users",
	noun: "user",
	get: func(ctx context.Context, c *xminds.Client, id string) (any, error) {
		return c.GetUser(ctx, id)
	},
	put: func(ctx context.Context, c *xminds.Client, id string, props xminds.Properties) error {
		return c.CreateOrUpdateUser(ctx, id, props)
	},
	list: func(ctx context.Context, c *xminds.Client, ids []string) (any, error) {
		return c.ListUsers(ctx, ids)
	},
}

var itemsCatalog = catalog{
	use:  "items",
	noun: "item",
	get: func(ctx context.Context, c *xminds.Client, id string) (any, error) {
		return c.GetItem(ctx, id)
	},
	put: func(ctx context.Context, c *xminds.Client, id string, props xminds.Properties) error {
		return c.CreateOrUpdateItem(ctx, id, props)
	},
	list: func(ctx context.Context, c *xminds.Client, ids []string) (any, error) {
		return c.ListItems(ctx, ids)
	},
}

func newCatalogCommand(a *app, cat catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   cat.use,
		Short: fmt.Sprintf("Read and write %s properties", cat.noun),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: fmt.Sprintf("Show one %s", cat.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				resp, err := cat.get(ctx, c, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	})

	var props string
	put := &cobra.Command{
		Use:   "put ID",
		Short: fmt.Sprintf("Create or replace one %s", cat.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseProperties(props)
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				return cat.put(ctx, c, args[0], p)
			})
		},
	}
	put.Flags().StringVar(&props, "props", "{}", "Properties as a JSON object")
	cmd.AddCommand(put)

	cmd.AddCommand(&cobra.Command{
		Use:   "list ID...",
		Short: fmt.Sprintf("Show several %ss; unknown ids are skipped", cat.noun),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				resp, err := cat.list(ctx, c, args)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	})

	return cmd
}
