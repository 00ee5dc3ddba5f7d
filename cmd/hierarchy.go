package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/query"
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <name>",
	Short: "Transitive inherits closure connecting <name> to its ancestors and descendants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		start := time.Now()
		pairs, err := query.Hierarchy(ctx.Store, args[0])
		ctx.Metrics.QueryLatency.WithLabelValues("hierarchy").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), pairs)
		}
		format.Hierarchy(cmd.OutOrStdout(), pairs)
		return nil
	},
}
