package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/xminds/pkg/xminds"
	"github.com/spf13/cobra"
)

// DefaultChunkSize is the number of ratings or interactions sent per bulk
// request by the import commands.
const DefaultChunkSize = 5000

type importResult struct {
	Imported int `json:"imported"`
	Requests int `json:"requests"`
}

// importChunks uploads items in chunks of size, stopping at the first failure.
// The result counts what was sent before the failure.
func importChunks[T any](items []T, size int, upload func([]T) error) (importResult, error) {
	if size <= 0 {
		return importResult{}, fmt.Errorf("chunk size must be positive, got %d", size)
	}

	var res importResult
	for _, chunk := range xminds.Chunk(items, size) {
		if err := upload(chunk); err != nil {
			return res, fmt.Errorf("chunk %d: %w", res.Requests+1, err)
		}
		res.Imported += len(chunk)
		res.Requests++
	}
	return res, nil
}

func newRatingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Manage explicit ratings (1 to 10)",
	}
	cmd.AddCommand(
		newRatingsSetCommand(a),
		newRatingsDeleteCommand(a),
		newRatingsListCommand(a),
		newRatingsImportCommand(a),
		newRatingsClearCommand(a),
	)
	return cmd
}

func newRatingsSetCommand(a *app) *cobra.Command {
	var timestamp float64

	cmd := &cobra.Command{
		Use:   "set USER ITEM RATING",
		Short: "Create or update a rating",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid rating %q: %w", args[2], err)
			}
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				return c.CreateOrUpdateRating(ctx, args[0], args[1], rating, timestamp)
			})
		},
	}
	cmd.Flags().Float64Var(&timestamp, "timestamp", 0, "Seconds since the epoch (default: now)")
	return cmd
}

func newRatingsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete USER ITEM",
		Short: "Delete a rating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				return c.DeleteRating(ctx, args[0], args[1])
			})
		},
	}
}

func newRatingsListCommand(a *app) *cobra.Command {
	var page, amt int

	cmd := &cobra.Command{
		Use:   "list USER",
		Short: "List one page of a user's ratings, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				resp, err := c.ListUserRatings(ctx, args[0], page, amt)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Page number starting at 1 (default: server default)")
	cmd.Flags().IntVar(&amt, "amt", 0, "Ratings per page (default: server default)")
	return cmd
}

func newRatingsImportCommand(a *app) *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "import USER FILE",
		Short: "Upload a JSON array of ratings in bulk requests (FILE may be -)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ratings []xminds.Rating
			if err := readJSONFile(args[1], &ratings); err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				res, err := importChunks(ratings, chunkSize, func(chunk []xminds.Rating) error {
					return c.CreateOrUpdateUserRatingsBulk(ctx, args[0], chunk)
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().IntVar(&chunkSize, "chunk-size", DefaultChunkSize, "Ratings per request")
	return cmd
}

func newRatingsClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear USER",
		Short: "Delete every rating of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *xminds.Client) error {
				return c.DeleteUserRatings(ctx, args[0])
			})
		},
	}
}
