package ui

import (
	"github.com/altinukshini/casesearch/internal/detail"
	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/pager"
	"github.com/altinukshini/casesearch/internal/suggest"
)

// Query lifecycle messages
type QueryCreatedMsg struct {
	Query  model.UserQuery
	Handle *model.QueryHandle
	Err    error
}

type QueryUpdatedMsg struct {
	QueryID string
	Query   model.UserQuery
	Handle  *model.QueryHandle
	Err     error
}

type QueryMetaMsg struct {
	QueryID string
	Meta    *model.QueryMeta
	Err     error
}

// Data fetched messages. Each carries the request it answers so the owning
// component can discard it if superseded.
type ResultsPageMsg struct {
	Req  pager.Request
	Page *model.ResultPage
	Err  error
}

type SuggestionsMsg struct {
	Req         suggest.Request
	Suggestions []string
	Err         error
}

type DocumentLoadedMsg struct {
	Req detail.Request
	Doc *model.Document
	Err error
}

type LabelsLoadedMsg struct {
	Labels []string
	Err    error
}

// TermSearchDoneMsg answers a find in the document. Seq identifies the
// search that produced it; only the latest one is shown.
type TermSearchDoneMsg struct {
	DocID   string
	Pattern string // as typed, including /re/ slashes
	Seq     uint64
	Results *model.TermResults
	Err     error
}

type StatusMsg struct {
	Text string
}
