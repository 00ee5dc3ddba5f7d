package cmd

import (
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
)

var forceReindex bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Walk --root and (re)build the code graph",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("indexing "+ctx.Root),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		)
		defer bar.Finish()

		rep, err := ctx.Indexer.IndexRoot(forceReindex)
		if err != nil {
			return err
		}
		ctx.Metrics.FilesIndexed.Add(float64(rep.FilesIndexed))
		ctx.Metrics.EdgesResolved.Add(float64(rep.EdgesResolved))

		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), rep)
		}
		format.IndexReport(cmd.OutOrStdout(), format.Report{
			FilesScanned:  rep.FilesScanned,
			FilesIndexed:  rep.FilesIndexed,
			FilesSkipped:  rep.FilesSkipped,
			FilesDeleted:  rep.FilesDeleted,
			EdgesResolved: rep.EdgesResolved,
			DurationMS:    rep.DurationMS,
		})
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&forceReindex, "force", false, "Reparse every file regardless of content hash")
}
