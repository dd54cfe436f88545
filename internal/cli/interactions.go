package cli

import (
	"context"

	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/spf13/cobra"
)

func newInteractionsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactions",
		Short: "Record implicit feedback such as views and purchases",
	}

	var timestamp float64
	add := &cobra.Command{
		Use:   "add USER ITEM TYPE",
		Short: "Record one interaction",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				return c.CreateInteraction(ctx, args[0], args[1], args[2], timestamp)
			})
		},
	}
	add.Flags().Float64Var(&timestamp, "timestamp", 0, "Seconds since the epoch (default: now)")

	var chunkSize int
	imp := &cobra.Command{
		Use:   "import USER FILE",
		Short: "Upload a JSON array of interactions in bulk requests (FILE may be -)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var interactions []xminds.Interaction
			if err := readJSONFile(args[1], &interactions); err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				res, err := importChunks(interactions, chunkSize, func(chunk []xminds.Interaction) error {
					return c.CreateOrUpdateUserInteractionsBulk(ctx, args[0], chunk)
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	imp.Flags().IntVar(&chunkSize, "chunk-size", DefaultChunkSize, "Interactions per request")

	cmd.AddCommand(add, imp)
	return cmd
}
