package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/query"
)

var refsKind string

var refsCmd = &cobra.Command{
	Use:   "refs <name>",
	Short: "List every edge whose resolved target is named <name>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		start := time.Now()
		rows, err := query.Refs(ctx.Store, args[0], refsKind)
		ctx.Metrics.QueryLatency.WithLabelValues("refs").Observe(time.Since(start).Seconds())
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

func init() {
	refsCmd.Flags().StringVar(&refsKind, "kind", "", "Filter by edge kind")
}
