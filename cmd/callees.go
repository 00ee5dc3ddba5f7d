package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/query"
)

var calleesCmd = &cobra.Command{
	Use:   "callees <name>",
	Short: "List every call edge sourced from the symbol named <name>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		start := time.Now()
		rows, err := query.Callees(ctx.Store, args[0])
		ctx.Metrics.QueryLatency.WithLabelValues("callees").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), rows)
		}
		format.Edges(cmd.OutOrStdout(), rows)
		return nil
	},
}
