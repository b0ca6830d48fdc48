package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate [DIR]",
		Short: "Rebuild every chapter word map and the master index from stored page geometry",
		Long: `Rescans the stored lines of every chapter document in DIR (default
paths.chapter_dir) with the current normalization and hyphen rules, rewrites
each document in place and rebuilds the master index from scratch. The new
master index replaces the old one only after every chapter has been merged.`,
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
			results, err := svc.RegenerateAll(ctx, dir)
			s := printResults(cmd.OutOrStdout(), "chapters", results)
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

func newRemoveCmd(a *app) *cobra.Command {
	var num float64
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Drop a chapter from the master index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.batch = true
			ctx := cmd.Context()
			svc, b, err := a.indexService(ctx)
			if err != nil {
				return err
			}
			n, err := svc.RemoveChapter(ctx, num)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed chapter %v from %d words in %s\n", num, n, b.location)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&num, "chapter", "c", 0, "chapter number to remove")
	_ = cmd.MarkFlagRequired("chapter")
	return cmd
}
