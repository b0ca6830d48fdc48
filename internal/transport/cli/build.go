package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/chapterdex/internal/repository/ocrpage"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		num    float64
		input  string
		output string
		master string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a chapter index from a directory of page results and merge it",
		Long: `Reads every *.json page result in --input (2.json sorts before 10.json),
numbers pages by that order starting at 1, writes the chapter document and
merges it into the master index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.batch = true
			if master != "" {
				a.cfg.Paths.MasterPath = master
			}
			if output == "" {
				output = defaultChapterPath(a.cfg.Paths.OutputDir, num)
			}

			ctx := cmd.Context()
			pages, err := ocrpage.New().Read(ctx, input)
			if err != nil {
				return err
			}
			svc, b, err := a.indexService(ctx)
			if err != nil {
				return err
			}

			idx, results, err := svc.Index(ctx, num, pages, output)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			s := printResults(out, "pages", results)
			_, _ = fmt.Fprintf(out, "chapter %s: %d pages, %d words -> %s (master: %s)\n",
				idx.Key(), len(idx.Pages), len(idx.Words), output, b.location)
			a.logger.Info("build finished",
				zap.String("chapter_key", idx.Key()),
				zap.Int("pages_ok", s.OK),
				zap.Int("pages_warning", s.Warnings),
				zap.Int("pages_error", s.Errors),
			)
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64VarP(&num, "chapter", "c", 0, "chapter number, e.g. 12 or 12.5")
	f.StringVarP(&input, "input", "i", "", "directory of per-page recognition results")
	f.StringVarP(&output, "output", "o", "", "chapter document path (default <output_dir>/<chapter>.json)")
	f.StringVarP(&master, "master", "m", "", "master index file (file storage only)")
	_ = cmd.MarkFlagRequired("chapter")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func defaultChapterPath(dir string, num float64) string {
	return filepath.Join(dir, strconv.FormatFloat(num, 'f', -1, 64)+".json")
}
