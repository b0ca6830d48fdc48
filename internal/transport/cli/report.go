package cli

import (
	"fmt"
	"io"

	dombatch "github.com/kailas-cloud/chapterdex/internal/domain/batch"
)

// printResults writes one summary line and then every non-ok item.
func printResults(w io.Writer, what string, results []dombatch.Result) dombatch.Summary {
	s := dombatch.Summarize(results)
	_, _ = fmt.Fprintf(w, "%s: %d ok, %d warnings, %d errors\n", what, s.OK, s.Warnings, s.Errors)
	for _, r := range results {
		if r.Status() == dombatch.StatusOK {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %-7s %s: %v\n", r.Status(), r.ID(), r.Err())
	}
	return s
}
