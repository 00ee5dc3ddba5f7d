// Package cmd wires codegraph's cobra command tree. It generalizes the
// teacher's cmd/mount.go layout (a package-level rootCmd, flags bound in
// init(), subcommands registered onto rootCmd, a package-level Execute
// entry point) from mache's single mount-or-build mountpoint tool into
// codegraph's index/query/watch/serve/rag command set.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/cgerrors"
	"github.com/agentic-research/codegraph/internal/config"
	"github.com/agentic-research/codegraph/internal/indexer"
	"github.com/agentic-research/codegraph/internal/metrics"
	"github.com/agentic-research/codegraph/internal/store"
)

var (
	// Version is set at build time via -ldflags, the same pattern the
	// teacher uses for its version/commit/date trio.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	rootPath string
	jsonOut  bool
)

var rootCmd = &cobra.Command{
	Use:           "codegraph",
	Short:         "codegraph: a local code graph indexer and query engine",
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", ".", "Project root to index and query")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON instead of formatted text")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(calleesCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(hierarchyCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ragCmd)
}

// Execute runs the root command and maps the returned error, if any, to
// the process exit code spec §7 defines (cgerrors.ExitCode).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cgerrors.ExitCode(err))
	}
}

// appContext bundles the store, indexer, config, and metrics registry
// every subcommand except `rag setup` needs, opened once against
// --root and closed by the caller via Close.
type appContext struct {
	Root    string
	Config  config.Config
	Store   *store.Store
	Indexer *indexer.Indexer
	Metrics *metrics.Registry
}

// openContext resolves --root, loads its .codegraph.yaml (if any), and
// opens the project's store file, creating it on first use.
func openContext() (*appContext, error) {
	root, err := resolveRoot(rootPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, cgerrors.Store("load project config", err)
	}

	dbPath := cfg.StoreFile
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(root, dbPath)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	ix := indexer.New(s, root)
	return &appContext{Root: root, Config: cfg, Store: s, Indexer: ix, Metrics: metrics.New()}, nil
}

func (c *appContext) Close() {
	_ = c.Store.Close()
}

// resolveRoot turns a (possibly relative) --root flag into an absolute
// path that exists and is a directory.
func resolveRoot(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", cgerrors.Userf("resolve root %s: %v", p, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", cgerrors.Userf("root does not exist: %s", abs)
	}
	if !info.IsDir() {
		return "", cgerrors.Userf("root is not a directory: %s", abs)
	}
	return abs, nil
}
