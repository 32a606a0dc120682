// Package suggest tracks autocomplete suggestions for the search box. A
// fetch is issued on every input change; only the response for the value
// currently in the box is ever shown.
package suggest

import (
	"strings"

	"github.com/altinukshini/casesearch/internal/api"
)

// Request is a suggestion fetch the caller must perform.
type Request struct {
	Field string
	Text  string
	Seq   uint64
}

type Fetcher struct {
	value       string
	seq         uint64
	settled     uint64 // requests up to this seq were issued before Clear
	suggestions []string
	failures    int
}

func New() *Fetcher {
	return &Fetcher{}
}

// Input records the current box value. It returns a fetch keyed to the exact
// value when the trimmed value is non-empty, and clears suggestions
// otherwise.
func (f *Fetcher) Input(value string) *Request {
	if value == f.value && f.seq > 0 {
		return nil
	}
	f.value = value
	if strings.TrimSpace(value) == "" {
		f.suggestions = nil
		return nil
	}
	f.seq++
	return &Request{Field: api.SuggestField, Text: value, Seq: f.seq}
}

// Commit applies a response. Responses whose text no longer matches the
// box value are dropped and Commit reports false. A failed fetch clears the
// list without surfacing anything to the user.
func (f *Fetcher) Commit(req Request, suggestions []string, err error) bool {
	if req.Text != f.value || req.Seq <= f.settled || strings.TrimSpace(f.value) == "" {
		return false
	}
	if err != nil {
		f.failures++
		f.suggestions = nil
		return true
	}
	f.suggestions = suggestions
	return true
}

// Clear drops the suggestions without changing the tracked value, e.g.
// after the user submits. Responses to requests already in flight are
// dropped too.
func (f *Fetcher) Clear() {
	f.suggestions = nil
	f.settled = f.seq
}

// Reset forgets the tracked value as well.
func (f *Fetcher) Reset() {
	f.value = ""
	f.suggestions = nil
}

func (f *Fetcher) Value() string { return f.value }

func (f *Fetcher) Suggestions() []string { return f.suggestions }

// Failures counts failed fetches, for diagnostics only.
func (f *Fetcher) Failures() int { return f.failures }
