package cli

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/chapterdex/internal/config"
	"github.com/kailas-cloud/chapterdex/internal/transport/fswatch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [DIR]",
		Short: "Merge chapter documents into the master index as they appear",
		Args:  cobra.MaximumNArgs(1),
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
			w := fswatch.New(dir, svc.MergeFile, a.logger)
			if a.cfg.Storage.Driver == config.DriverFile {
				w = w.WithExclude(a.cfg.Paths.MasterPath)
			}
			return w.Run(ctx)
		},
	}
}
