// Package detail tracks the loading state of the document shown on the
// detail screen.
package detail

import (
	"errors"

	"github.com/altinukshini/casesearch/internal/api"
	"github.com/altinukshini/casesearch/internal/model"
)

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	NotFound
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
	case NotFound:
		return "not found"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Request is a document fetch the caller must perform.
type Request struct {
	DocID string
	Seq   uint64
}

type Loader struct {
	status Status
	docID  string
	seq    uint64
	doc    *model.Document
	err    error
}

func New() *Loader {
	return &Loader{}
}

// Load targets docID. Loading the document that is already loading or
// loaded does nothing; use Reload to fetch it again.
func (l *Loader) Load(docID string) *Request {
	if docID == l.docID && (l.status == Loading || l.status == Loaded) {
		return nil
	}
	l.docID = docID
	l.doc = nil
	return l.issue()
}

// Reload re-fetches the current document.
func (l *Loader) Reload() *Request {
	if l.status == Idle {
		return nil
	}
	return l.issue()
}

func (l *Loader) issue() *Request {
	l.seq++
	l.status = Loading
	l.err = nil
	return &Request{DocID: l.docID, Seq: l.seq}
}

// Commit applies the outcome of req and reports whether it was current.
func (l *Loader) Commit(req Request, doc *model.Document, err error) bool {
	if l.status != Loading || req.DocID != l.docID || req.Seq != l.seq {
		return false
	}
	switch {
	case err == nil && doc != nil:
		l.status = Loaded
		l.doc = doc
	case errors.Is(err, api.ErrDetailNotFound), err == nil:
		l.status = NotFound
		l.err = err
	default:
		l.status = Failed
		l.err = err
	}
	return true
}

func (l *Loader) Status() Status { return l.status }

func (l *Loader) DocID() string { return l.docID }

// Document is the loaded document, or nil unless Status is Loaded.
func (l *Loader) Document() *model.Document { return l.doc }

func (l *Loader) Err() error { return l.err }

// Unavailable reports whether the not-found view should be shown. Missing
// and failed documents render the same way.
func (l *Loader) Unavailable() bool {
	return l.status == NotFound || l.status == Failed
}
