package model

import (
	"encoding/json"
	"strings"
	"time"
)

// UserQuery holds the free-text query and the structured search fields.
type UserQuery struct {
	Query string `json:"query,omitempty"`
	QW    string `json:"qw,omitempty"`   // full text
	AJMC  string `json:"ajmc,omitempty"` // case name
	AY    string `json:"ay,omitempty"`   // cause of action
	FYMC  string `json:"fymc,omitempty"` // court
	SPRY  string `json:"spry,omitempty"` // judges
	DSR   string `json:"dsr,omitempty"`  // litigants
}

// UnmarshalJSON accepts a string, a list of strings or null for every field.
// The service echoes "ay" back as a list.
func (q *UserQuery) UnmarshalJSON(data []byte) error {
	var raw struct {
		Query Text `json:"query"`
		QW    Text `json:"qw"`
		AJMC  Text `json:"ajmc"`
		AY    Text `json:"ay"`
		FYMC  Text `json:"fymc"`
		SPRY  Text `json:"spry"`
		DSR   Text `json:"dsr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = UserQuery{
		Query: string(raw.Query),
		QW:    string(raw.QW),
		AJMC:  string(raw.AJMC),
		AY:    string(raw.AY),
		FYMC:  string(raw.FYMC),
		SPRY:  string(raw.SPRY),
		DSR:   string(raw.DSR),
	}
	return nil
}

// Canonical returns the query with surrounding whitespace trimmed from every field.
func (q UserQuery) Canonical() UserQuery {
	return UserQuery{
		Query: strings.TrimSpace(q.Query),
		QW:    strings.TrimSpace(q.QW),
		AJMC:  strings.TrimSpace(q.AJMC),
		AY:    strings.TrimSpace(q.AY),
		FYMC:  strings.TrimSpace(q.FYMC),
		SPRY:  strings.TrimSpace(q.SPRY),
		DSR:   strings.TrimSpace(q.DSR),
	}
}

func (q UserQuery) IsEmpty() bool {
	return q.Canonical() == UserQuery{}
}

// Summary renders the non-empty fields for status lines.
func (q UserQuery) Summary() string {
	var parts []string
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			if len([]rune(v)) > 24 {
				v = string([]rune(v)[:24]) + "..."
			}
			parts = append(parts, label+v)
		}
	}
	add("", q.Query)
	add("qw:", q.QW)
	add("ajmc:", q.AJMC)
	add("ay:", q.AY)
	add("fymc:", q.FYMC)
	add("spry:", q.SPRY)
	add("dsr:", q.DSR)
	return strings.Join(parts, " ")
}

type CreateQueryRequest struct {
	UserQuery UserQuery `json:"user_query"`
}

type UpdateQueryRequest struct {
	QueryID   string    `json:"query_id"`
	UserQuery UserQuery `json:"user_query"`
}

// QueryHandle is the response to creating or updating a query.
type QueryHandle struct {
	QueryID      string `json:"query_id"`
	TotalResults int    `json:"total_results"`
}

// QueryMeta is a snapshot of a server-side query resource.
type QueryMeta struct {
	ID           string    `json:"id"`
	Params       UserQuery `json:"params"`
	CreatedAt    Timestamp `json:"created_at"`
	LastAccessed Timestamp `json:"last_accessed"`
	TotalResults int       `json:"total_results"`
	Version      int       `json:"version"`
}

// Timestamp is a unix time in (possibly fractional) seconds.
type Timestamp float64

func (t Timestamp) Time() time.Time {
	if t == 0 {
		return time.Time{}
	}
	sec := int64(t)
	nsec := int64((float64(t) - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}
