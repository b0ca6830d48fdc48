package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMergeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge FILE",
		Short: "Merge one chapter document into the master index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.batch = true
			ctx := cmd.Context()
			svc, b, err := a.indexService(ctx)
			if err != nil {
				return err
			}
			if err := svc.MergeFile(ctx, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "merged %s into %s\n", args[0], b.location)
			return nil
		},
	}
}

func newBulkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk [DIR]",
		Short: "Merge every chapter document in a directory into the master index",
		Long: `Merges every *.json chapter document in DIR (default paths.chapter_dir) in
file-name order. Documents that cannot be read are reported and skipped; a
master index that cannot be read stops the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.batch = true
			dir := a.cfg.Paths.ChapterDir
			if len(args) == 1 {
				dir = args[0]
			}
			ctx := cmd.Context()
			svc, _, err := a.indexService(ctx)
			if err != nil {
				return err
			}
			results, err := svc.BulkMerge(ctx, dir)
			s := printResults(cmd.OutOrStdout(), "documents", results)
			if err != nil {
				return err
			}
			if s.Errors > 0 {
				return partialError(s.Errors, len(results))
			}
			return nil
		},
	}
}
