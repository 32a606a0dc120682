package model

// Document is the detail view of a single judgment document.
type Document struct {
	ID       string `json:"id"`
	AJID     string `json:"ajId"`
	AJName   string `json:"ajName"`
	WritID   string `json:"writId"`
	WritName string `json:"writName"`
	Labels   List   `json:"labels"`
	FYMC     List   `json:"fymc"`
	SPRY     List   `json:"spry"`
	DSR      List   `json:"dsr"`
	AJJBQK   string `json:"ajjbqk"`
	CPFXGC   string `json:"cpfxgc"`
	PJJG     string `json:"pjjg"`
	QW       string `json:"qw"`
}

// Section is a titled block of document text.
type Section struct {
	Title   string
	Content string
}

// Sections returns the document body in display order.
func (d Document) Sections() []Section {
	return []Section{
		{Title: "Basic facts", Content: d.AJJBQK},
		{Title: "Reasoning", Content: d.CPFXGC},
		{Title: "Judgment", Content: d.PJJG},
		{Title: "Full text", Content: d.QW},
	}
}

type LabelsResponse struct {
	Labels []string `json:"labels"`
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}
