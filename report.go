package slideforge

import (
	"fmt"
	"strings"
)

// SlideFailure records why one slide produced no page in the output.
type SlideFailure struct {
	Index  int    // merge index of the failed slide
	Path   string // source document path
	Reason error
}

// Report is the outcome of one aggregation run. A run that produced an
// output file can still carry failures; callers decide how to surface them.
type Report struct {
	Total     int
	Succeeded int
	Failures  []SlideFailure
}

func (r *Report) addFailure(index int, path string, reason error) {
	r.Failures = append(r.Failures, SlideFailure{Index: index, Path: path, Reason: reason})
}

// Failed reports whether any slide failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Summary returns a one-line human-readable outcome, for example
// "8/10 slides converted (2 failed)".
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d slides converted", r.Succeeded, r.Total)
	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, " (%d failed)", len(r.Failures))
	}
	return b.String()
}
