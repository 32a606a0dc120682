package model

// CaseResult is the per-document projection returned in a result page.
type CaseResult struct {
	AJID     string   `json:"ajId"`
	AJName   string   `json:"ajName"`
	AJJBQK   string   `json:"ajjbqk"` // basic facts
	CPFXGC   string   `json:"cpfxgc"` // reasoning
	PJJG     string   `json:"pjjg"`   // judgment
	QW       string   `json:"qw"`     // full text
	WritID   string   `json:"writId"`
	WritName string   `json:"writName"`
	Labels   List     `json:"labels"`
	FYMC     List     `json:"fymc"`
	SPRY     List     `json:"spry"`
	DSR      List     `json:"dsr"`
	Score    *float64 `json:"score"`
}

// Title returns the case name, falling back to the case id.
func (r CaseResult) Title() string {
	if r.AJName != "" {
		return r.AJName
	}
	return r.AJID
}

// Excerpt returns the first n runes of the basic facts section.
func (r CaseResult) Excerpt(n int) string {
	runes := []rune(r.AJJBQK)
	if len(runes) == 0 {
		return "(no case summary)"
	}
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return string(runes)
}

// ResultPage is the response for one page of a query's results.
type ResultPage struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Results    []CaseResult `json:"results"`
}
