package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/semantic"
	"github.com/agentic-research/codegraph/internal/watcher"
)

var (
	watchDebounceSec int
	watchRagDelaySec int
	watchRAG         bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch --root and incrementally reindex on every quiescent period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		debounce := time.Duration(watchDebounceSec) * time.Second
		if watchDebounceSec <= 0 {
			debounce = time.Duration(ctx.Config.Debounce) * time.Second
		}
		ragDelay := time.Duration(watchRagDelaySec) * time.Second
		if watchRagDelaySec <= 0 {
			ragDelay = time.Duration(ctx.Config.RagDelay) * time.Second
		}

		var embed watcher.EmbedFunc
		if watchRAG {
			embed = ragEmbedFunc(ctx)
		}

		w := watcher.New(ctx.Indexer, debounce, ragDelay, watchRAG, embed)

		sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "watching %s (debounce=%s rag=%v)\n", ctx.Root, debounce, watchRAG)
		return w.Run(sigCtx)
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounceSec, "debounce", 0, "Seconds of quiet before an incremental index (0 = config default)")
	watchCmd.Flags().BoolVar(&watchRAG, "rag", false, "Also run the embedding pass on an independent rag-delay timer")
	watchCmd.Flags().IntVar(&watchRagDelaySec, "rag-delay", 0, "Seconds of quiet before an embedding pass (0 = config default)")
}

// ragEmbedFunc builds the EmbedFunc `watch --rag` hands to the watcher:
// a hashing embedder over a fresh, empty in-memory vector index on every
// watch invocation; embeddings already in the store are not loaded into it.
func ragEmbedFunc(c *appContext) watcher.EmbedFunc {
	model := semantic.NewHashingEmbedder(0)
	idx := semantic.NewVectorIndex()
	return func(embedCtx context.Context) (int, error) {
		return semantic.EmbedPending(embedCtx, c.Store, model, idx)
	}
}
