// Package nav models the client's navigational location: which screen is
// shown and, for the results screen, which page was requested.
package nav

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type Route int

const (
	Home Route = iota
	Search
	Detail
)

func (r Route) String() string {
	switch r {
	case Home:
		return "home"
	case Search:
		return "search"
	case Detail:
		return "detail"
	}
	return "unknown"
}

// Location is a parsed navigational location. Page is only meaningful for
// the Search route and may be out of range until the pager corrects it.
type Location struct {
	Route   Route
	QueryID string
	DocID   string
	Page    int
}

func HomeLocation() Location {
	return Location{Route: Home}
}

func SearchLocation(queryID string, page int) Location {
	return Location{Route: Search, QueryID: queryID, Page: page}
}

func DetailLocation(docID string) Location {
	return Location{Route: Detail, DocID: docID}
}

// Parse reads "/", "/search/<id>?page=<n>" or "/detail/<id>". A missing
// page means 1; a page that is not a number parses as 0 so that it gets
// corrected rather than silently replaced.
func Parse(s string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", s, err)
	}
	path := strings.Trim(u.EscapedPath(), "/")
	if path == "" {
		return HomeLocation(), nil
	}

	route, id, ok := strings.Cut(path, "/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return Location{}, fmt.Errorf("unknown location %q", s)
	}
	if id, err = url.PathUnescape(id); err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", s, err)
	}

	switch route {
	case "search":
		page := 1
		if raw, present := u.Query()["page"]; present && len(raw) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(raw[0]))
			if err != nil {
				n = 0
			}
			page = n
		}
		return SearchLocation(id, page), nil
	case "detail":
		return DetailLocation(id), nil
	}
	return Location{}, fmt.Errorf("unknown location %q", s)
}

func (l Location) String() string {
	switch l.Route {
	case Search:
		return fmt.Sprintf("/search/%s?page=%d", url.PathEscape(l.QueryID), l.Page)
	case Detail:
		return "/detail/" + url.PathEscape(l.DocID)
	}
	return "/"
}

// WithPage returns a copy of a search location targeting page.
func (l Location) WithPage(page int) Location {
	l.Page = page
	return l
}
