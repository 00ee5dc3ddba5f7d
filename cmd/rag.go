package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/semantic"
	"github.com/agentic-research/codegraph/internal/semantic/model"
)

var ragCmd = &cobra.Command{
	Use:   "rag",
	Short: "Semantic search: model cache setup, embedding, and hybrid search",
}

var ragSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Materialize the model cache directory (explicit, never implicit)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := model.Setup()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "model cache ready at %s\n", dir)
		return nil
	},
}

var ragForceEmbed bool

var ragIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed every symbol whose embedding is missing or stale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		embedModel := semantic.NewHashingEmbedder(0)
		idx := semantic.NewVectorIndex()

		var n int
		if ragForceEmbed {
			n, err = semantic.ForceEmbedAll(cmd.Context(), ctx.Store, embedModel, idx)
		} else {
			n, err = semantic.EmbedPending(cmd.Context(), ctx.Store, embedModel, idx)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "embedded %d symbol(s)\n", n)
		return nil
	},
}

var (
	ragSearchKind  string
	ragSearchLimit int
)

var ragSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Hybrid semantic search (FTS + vector + RRF + optional rerank)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		idx, err := loadVectorIndex(ctx)
		if err != nil {
			return err
		}
		sr := &semantic.Searcher{
			Store:    ctx.Store,
			Index:    idx,
			Model:    semantic.NewHashingEmbedder(0),
			Reranker: semantic.LexicalOverlapReranker{},
		}

		hits, err := sr.Search(cmd.Context(), args[0], ragSearchKind, ragSearchLimit)
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), hits)
		}
		format.SearchHits(cmd.OutOrStdout(), hits)
		return nil
	},
}

func init() {
	ragIndexCmd.Flags().BoolVar(&ragForceEmbed, "force", false, "Clear every embedding and re-embed the whole project")
	ragSearchCmd.Flags().StringVar(&ragSearchKind, "kind", "", "Filter by symbol kind")
	ragSearchCmd.Flags().IntVar(&ragSearchLimit, "limit", 10, "Maximum rows to return")

	ragCmd.AddCommand(ragSetupCmd)
	ragCmd.AddCommand(ragIndexCmd)
	ragCmd.AddCommand(ragSearchCmd)
}
