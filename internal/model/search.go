package model

// TermMatch is one line of a document section containing the search term.
type TermMatch struct {
	Section string
	Line    int // 1-based line within the section
	Content string
}

type TermQuery struct {
	Pattern       string
	IsRegex       bool
	CaseSensitive bool
	Section       string // restrict to one section title, empty for all
}

type TermResults struct {
	Query         TermQuery
	Matches       []TermMatch
	SectionCounts map[string]int // section title -> match count
	TotalCount    int
}
