// Package search finds term occurrences inside the sections of a loaded
// document.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/altinukshini/casesearch/internal/model"
)

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Search scans every section line by line, in section order. An invalid
// regular expression is reported as an error with empty results.
func (e *Engine) Search(sections []model.Section, query model.TermQuery) (*model.TermResults, error) {
	results := &model.TermResults{
		Query:         query,
		SectionCounts: make(map[string]int),
	}
	if strings.TrimSpace(query.Pattern) == "" {
		return results, nil
	}

	matcher, err := buildMatcher(query)
	if err != nil {
		return results, fmt.Errorf("compile pattern %q: %w", query.Pattern, err)
	}

	for _, sec := range sections {
		if query.Section != "" && query.Section != sec.Title {
			continue
		}
		for i, line := range strings.Split(sec.Content, "\n") {
			if matcher(line) {
				results.Matches = append(results.Matches, model.TermMatch{
					Section: sec.Title,
					Line:    i + 1,
					Content: line,
				})
				results.SectionCounts[sec.Title]++
				results.TotalCount++
			}
		}
	}

	return results, nil
}

func buildMatcher(query model.TermQuery) (func(string) bool, error) {
	if query.IsRegex {
		flags := ""
		if !query.CaseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + query.Pattern)
		if err != nil {
			return nil, err
		}
		return func(line string) bool { return re.MatchString(line) }, nil
	}

	pattern := query.Pattern
	if !query.CaseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return func(line string) bool {
		if !query.CaseSensitive {
			line = strings.ToLower(line)
		}
		return strings.Contains(line, pattern)
	}, nil
}
