// Package cli is the chapterdex command surface and composition root.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the root command until it finishes or the process is interrupted.
func Execute(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds a fresh command tree. Every call returns independent
// flag state.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "chapterdex",
		Short: "Index the words of OCR'd chapters by page",
		Long: `chapterdex turns per-page text recognition results into a chapter word index
(word -> pages) and folds every chapter into one master index
(word -> chapter -> pages).`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.opts.configPath, "config", "", "config file (default config/<ENV>.yaml)")
	f.StringVar(&a.opts.logLevel, "log-level", "", "log level override: debug, info, warn, error")
	f.StringVar(&a.opts.metricsFile, "metrics-file", "", "write a node_exporter textfile after batch commands")

	root.AddCommand(
		newBuildCmd(a),
		newMergeCmd(a),
		newBulkCmd(a),
		newRegenerateCmd(a),
		newRemoveCmd(a),
		newLookupCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// errPartial marks a batch that finished with failed items.
var errPartial = errors.New("batch finished with errors")

func partialError(failed, total int) error {
	return fmt.Errorf("%d of %d failed: %w", failed, total, errPartial)
}
