// Package pager keeps the displayed result page of a query in step with the
// requested page number and the page range reported by the server.
//
// A Pager never performs I/O. Navigate and Reload hand back a Request that
// the caller executes; the outcome is fed back through Commit, which drops
// anything that is no longer the latest request.
package pager

import (
	"github.com/altinukshini/casesearch/internal/model"
)

const (
	// MaxPages is the highest page a client may request or display.
	MaxPages = 100
	// PageSize is the number of results requested per page.
	PageSize = 10
)

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Empty
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Clamp bounds a requested page to [1, MaxPages].
func Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPages {
		return MaxPages
	}
	return page
}

// NormalizeTotal maps a missing or non-positive total page count to 1.
func NormalizeTotal(total int) int {
	if total <= 0 {
		return 1
	}
	return total
}

// DisplayPages is the number of pages offered in the pagination bar.
func DisplayPages(total int) int {
	return min(NormalizeTotal(total), MaxPages)
}

// Key identifies one page of one query.
type Key struct {
	QueryID string
	Page    int
}

// Request is a results fetch the caller must perform.
type Request struct {
	Key
	PageSize int
	Seq      uint64
}

// Transition describes what a Navigate call requires of the caller.
type Transition struct {
	// Page is the clamped page the pager now targets.
	Page int
	// Corrected is set when Page differs from the requested page; the caller
	// must rewrite the location's page to Page.
	Corrected bool
	// Fetch is non-nil when a new results request must be issued.
	Fetch *Request
}

type Pager struct {
	status     Status
	key        Key
	seq        uint64
	pageSize   int
	results    []model.CaseResult
	totalPages int
	err        error
}

func New(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &Pager{pageSize: pageSize, totalPages: 1}
}

// Navigate targets page requested of queryID. Re-entering with the current
// key is a no-op, so writing a corrected page back to the location and
// navigating again settles immediately.
func (p *Pager) Navigate(queryID string, requested int) Transition {
	page := Clamp(requested)
	t := Transition{Page: page, Corrected: page != requested}

	if queryID == "" {
		p.reset()
		return t
	}

	key := Key{QueryID: queryID, Page: page}
	if p.status != Idle && key == p.key {
		return t
	}

	p.key = key
	t.Fetch = p.issue()
	return t
}

// Reload re-issues the current key. It returns nil while idle.
func (p *Pager) Reload() *Request {
	if p.status == Idle {
		return nil
	}
	return p.issue()
}

func (p *Pager) issue() *Request {
	p.seq++
	p.status = Loading
	p.err = nil
	return &Request{Key: p.key, PageSize: p.pageSize, Seq: p.seq}
}

// Commit applies the outcome of req. It reports false, leaving the pager
// untouched, when req is not the latest issued request.
func (p *Pager) Commit(req Request, page *model.ResultPage, err error) bool {
	if p.status != Loading || req.Seq != p.seq || req.Key != p.key {
		return false
	}
	if err != nil {
		p.status = Failed
		p.results = nil
		p.totalPages = 1
		p.err = err
		return true
	}
	if page == nil {
		page = &model.ResultPage{}
	}
	p.results = page.Results
	p.totalPages = NormalizeTotal(page.TotalPages)
	if len(page.Results) == 0 {
		p.status = Empty
	} else {
		p.status = Loaded
	}
	return true
}

func (p *Pager) reset() {
	p.status = Idle
	p.key = Key{}
	p.results = nil
	p.totalPages = 1
	p.err = nil
}

func (p *Pager) Status() Status { return p.status }

func (p *Pager) Key() Key { return p.key }

// Page is the displayed page. It is not bounded by TotalPages.
func (p *Pager) Page() int { return p.key.Page }

func (p *Pager) Results() []model.CaseResult { return p.results }

func (p *Pager) TotalPages() int { return p.totalPages }

func (p *Pager) DisplayPages() int { return DisplayPages(p.totalPages) }

// Err is the failure behind the Failed state, kept for diagnostics.
func (p *Pager) Err() error { return p.err }

// ShowControls reports whether pagination controls should be rendered.
func (p *Pager) ShowControls() bool { return p.status == Loaded }
