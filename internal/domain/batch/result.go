// Package batch reports per-item outcomes of multi-page and multi-document runs.
package batch

// ItemStatus is the processing outcome of a single page or document.
type ItemStatus string

// Item status values.
const (
	StatusOK      ItemStatus = "ok"
	StatusWarning ItemStatus = "warning" // processed, with part of it skipped
	StatusError   ItemStatus = "error"   // dropped entirely
)

// Result is the outcome of processing one item.
type Result struct {
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful result.
func NewOK(id string) Result { return Result{id: id, status: StatusOK} }

// NewWarning creates a result for an item that was kept despite err.
func NewWarning(id string, err error) Result { return Result{id: id, status: StatusWarning, err: err} }

// NewError creates a result for an item that was dropped because of err.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// ID returns the item identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts results by status.
type Summary struct {
	OK       int
	Warnings int
	Errors   int
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.status {
		case StatusOK:
			s.OK++
		case StatusWarning:
			s.Warnings++
		case StatusError:
			s.Errors++
		}
	}
	return s
}

// Failed returns the results with StatusError.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.status == StatusError {
			out = append(out, r)
		}
	}
	return out
}
