package batch

import "errors"

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusIndexed ItemStatus = "indexed"
	StatusDeleted ItemStatus = "deleted"
	StatusFailed  ItemStatus = "failed"
)

// Result is the outcome of writing one document in a batch.
type Result struct {
	id     string
	status ItemStatus
	err    error
}

// Indexed creates a result for a stored document.
func Indexed(id string) Result { return Result{id: id, status: StatusIndexed} }

// Deleted creates a result for a removed document.
func Deleted(id string) Result { return Result{id: id, status: StatusDeleted} }

// Failed creates a result for a document that could not be written.
func Failed(id string, err error) Result { return Result{id: id, status: StatusFailed, err: err} }

// ID returns the item identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary aggregates a batch run.
type Summary struct {
	Indexed int
	Deleted int
	Failed  int
	// Err joins every item error.
	Err error
}

// Summarize counts outcomes per status.
func Summarize(results []Result) Summary {
	var s Summary
	var errs []error
	for _, r := range results {
		switch r.status {
		case StatusIndexed:
			s.Indexed++
		case StatusDeleted:
			s.Deleted++
		case StatusFailed:
			s.Failed++
			errs = append(errs, r.err)
		}
	}
	s.Err = errors.Join(errs...)
	return s
}
