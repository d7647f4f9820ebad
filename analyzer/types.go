package analyzer

import "strings"

// Request is the input for a single analysis
type Request struct {
	URL      string `json:"url"`
	Keywords string `json:"keywords"`
}

// HasKeywords reports whether the request carries a keyword focus
func (r Request) HasKeywords() bool {
	return strings.TrimSpace(r.Keywords) != ""
}

// SeoAnalysis is the structured report returned by the model
type SeoAnalysis struct {
	OverallScore    float64  `json:"overallScore"`
	OnPage          OnPage   `json:"onPage"`
	Content         Content  `json:"content"`
	Recommendations []string `json:"recommendations"`
}

// OnPage groups the title, meta description, headings and image alt findings
type OnPage struct {
	Title           Factor          `json:"title"`
	MetaDescription Factor          `json:"metaDescription"`
	Headings        HeadingsFactor  `json:"headings"`
	ImageAlts       ImageAltsFactor `json:"imageAlts"`
}

// Content groups the keyword density, readability and length findings
type Content struct {
	KeywordDensity Factor `json:"keywordDensity"`
	Readability    Factor `json:"readability"`
	ContentLength  Factor `json:"contentLength"`
}

// Factor is a scored sub-finding. Text holds the evaluated source text when the model sent one.
type Factor struct {
	Text     *string `json:"text,omitempty"`
	Analysis string  `json:"analysis"`
	Score    float64 `json:"score"`
}

// HeadingsFactor lists the H1 and H2 texts found, in page order
type HeadingsFactor struct {
	H1       []string `json:"h1"`
	H2       []string `json:"h2"`
	Analysis string   `json:"analysis"`
	Score    float64  `json:"score"`
}

// ImageAltsFactor scores image alt text quality
type ImageAltsFactor struct {
	Analysis string  `json:"analysis"`
	Score    float64 `json:"score"`
}

// GroundingChunk is a web citation attached to the model's answer
type GroundingChunk struct {
	Web GroundingWeb `json:"web"`
}

// GroundingWeb is the source page of a citation. Title may be empty.
type GroundingWeb struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// DisplayTitle returns the citation title, falling back to the URI
func (g GroundingChunk) DisplayTitle() string {
	if g.Web.Title == "" {
		return g.Web.URI
	}
	return g.Web.Title
}

// Result is what an analysis produces. Analysis is nil when the reply could not be parsed.
type Result struct {
	Analysis        *SeoAnalysis     `json:"analysis"`
	GroundingChunks []GroundingChunk `json:"groundingChunks"`
}

// Generation is the raw reply of a single model call
type Generation struct {
	Text            string
	GroundingChunks []GroundingChunk
}
