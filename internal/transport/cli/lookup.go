package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/chapterdex/internal/domain/chapter"
	lookupuc "github.com/kailas-cloud/chapterdex/internal/usecase/lookup"
)

func newLookupCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lookup WORD",
		Short: "Show the chapters and pages a word appears on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			hit, err := lookupuc.New(b.store).Word(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(hit)
			}
			printHit(out, hit)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// printHit lists chapters in numeric order, one per line.
func printHit(w io.Writer, hit *lookupuc.Hit) {
	keys := make([]string, 0, len(hit.Locations))
	for k := range hit.Locations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := chapter.ParseKey(keys[i])
		b, errB := chapter.ParseKey(keys[j])
		if errA != nil || errB != nil || a == b {
			return keys[i] < keys[j]
		}
		return a < b
	})

	_, _ = fmt.Fprintln(w, hit.Word)
	for _, k := range keys {
		pages := make([]string, 0, len(hit.Locations[k]))
		for _, p := range hit.Locations[k] {
			pages = append(pages, strconv.Itoa(p))
		}
		_, _ = fmt.Fprintf(w, "  %s: %s\n", k, strings.Join(pages, ", "))
	}
}
