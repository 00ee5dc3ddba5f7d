package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/rpcserver"
	"github.com/agentic-research/codegraph/internal/semantic"
	"github.com/agentic-research/codegraph/internal/watcher"
)

var (
	serveWatch bool
	serveRAG   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the stdio RPC tool server (one tool per query handler)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		var searcher *semantic.Searcher
		var embed watcher.EmbedFunc
		if serveRAG {
			model := semantic.NewHashingEmbedder(0)
			idx, loadErr := loadVectorIndex(ctx)
			if loadErr != nil {
				return loadErr
			}
			searcher = &semantic.Searcher{
				Store:    ctx.Store,
				Index:    idx,
				Model:    model,
				Reranker: semantic.LexicalOverlapReranker{},
			}
			embed = func(embedCtx context.Context) (int, error) {
				return semantic.EmbedPending(embedCtx, ctx.Store, model, idx)
			}
		}

		srv := rpcserver.New(ctx.Store, ctx.Indexer, searcher, ctx.Root)

		if serveWatch {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			w := watcher.New(ctx.Indexer, 0, 0, serveRAG, embed)
			go func() {
				_ = w.Run(sigCtx)
			}()
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "serving RPC tools over stdio (watch=%v rag=%v)\n", serveWatch, serveRAG)
		return srv.Serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Also run the filesystem watcher alongside the RPC server")
	serveCmd.Flags().BoolVar(&serveRAG, "rag", false, "Enable the semantic_search tool's vector tier")
}

func loadVectorIndex(c *appContext) (*semantic.VectorIndex, error) {
	records, err := c.Store.AllEmbeddings()
	if err != nil {
		return nil, err
	}
	return semantic.LoadFromStore(records), nil
}
