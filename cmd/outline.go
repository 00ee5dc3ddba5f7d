package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/query"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "List every symbol defined in a file, ordered by start line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		start := time.Now()
		rows, err := query.Outline(ctx.Store, args[0])
		ctx.Metrics.QueryLatency.WithLabelValues("outline").Observe(time.Since(start).Seconds())
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
