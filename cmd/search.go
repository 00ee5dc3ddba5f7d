package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/query"
)

var (
	searchKind  string
	searchFile  string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find symbols by name: exact, then prefix, then substring match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		start := time.Now()
		rows, err := query.Search(ctx.Store, args[0], searchKind, searchFile, searchLimit)
		ctx.Metrics.QueryLatency.WithLabelValues("search").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), rows)
		}
		format.Symbols(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "Filter by symbol kind")
	searchCmd.Flags().StringVar(&searchFile, "file", "", "Filter by file path")
	searchCmd.Flags().IntVar(&searchLimit, "limit", -1, "Maximum rows to return, capped at 100 (unset = 20, 0 = none)")
}
