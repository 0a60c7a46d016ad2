package kb

import (
	"slices"
	"time"
)

// AcceptThreshold is the minimum score at which a KB match is trusted
// without consulting a completion service.
const AcceptThreshold = 1.0

// Entry is a single knowledge-base record.
type Entry struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Content     string     `json:"content" yaml:"content"`
	Categories  []string   `json:"categories,omitempty" yaml:"categories,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// Clone returns a copy sharing no memory with e
func (e Entry) Clone() Entry {
	e.Categories = slices.Clone(e.Categories)
	if e.LastUpdated != nil {
		t := *e.LastUpdated
		e.LastUpdated = &t
	}
	return e
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = entries[i].Clone()
	}
	return out
}

// Result is the outcome of scoring a question against a set of entries.
// Best is nil when no entry scored above zero.
type Result struct {
	Best  *Entry
	Score float64
}

// Accepted reports whether the result clears AcceptThreshold.
func (r Result) Accepted() bool {
	return r.Best != nil && r.Score >= AcceptThreshold
}
