package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/chapterdex/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		// No config or logger needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chapterdex version %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
