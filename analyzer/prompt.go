package analyzer

import (
	"fmt"
	"strings"
)

// responseLayout is the JSON shape the model is asked to return. It must stay in sync with SeoAnalysis.
const responseLayout = `{
  "overallScore": number,
  "onPage": {
    "title": { "text": string, "analysis": string, "score": number },
    "metaDescription": { "text": string, "analysis": string, "score": number },
    "headings": { "h1": string[], "h2": string[], "analysis": string, "score": number },
    "imageAlts": { "analysis": string, "score": number }
  },
  "content": {
    "keywordDensity": { "analysis": string, "score": number },
    "readability": { "analysis": string, "score": number },
    "contentLength": { "analysis": string, "score": number }
  },
  "recommendations": string[]
}`

// phrasing holds the parts of the prompt that depend on whether keywords were given
type phrasing struct {
	focus          string
	title          string
	meta           string
	headings       string
	imageAlts      string
	keywordDensity string
	recommendation string
}

func keywordPhrasing(keywords string) phrasing {
	return phrasing{
		focus:          fmt.Sprintf(" with a focus on the target keywords: \"%s\"", keywords),
		title:          "keyword usage, and clarity.",
		meta:           "keyword usage, and",
		headings:       ", and the use of keywords",
		imageAlts:      ", keyword-rich",
		keywordDensity: "Analyze the usage and distribution of target keywords. Is it natural or stuffed?",
		recommendation: "improve the site's SEO for the given keywords",
	}
}

func genericPhrasing() phrasing {
	return phrasing{
		title:          "and clarity.",
		meta:           "and",
		keywordDensity: "Analyze the overall keyword usage and density. Are there natural keyword patterns?",
		recommendation: "improve the site's SEO performance",
	}
}

// BuildPrompt assembles the instruction sent to the model for req
func BuildPrompt(req Request) string {
	p := genericPhrasing()
	if req.HasKeywords() {
		p = keywordPhrasing(req.Keywords)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "As an expert SEO analyst, please provide a comprehensive SEO analysis for the website at the URL: %s%s.\n\n", req.URL, p.focus)
	sb.WriteString("Analyze the following areas and provide a score from 0-100 for each sub-item, where 100 is optimal.\n")
	sb.WriteString("1. **On-Page SEO:**\n")
	fmt.Fprintf(&sb, "   * Title Tag: Evaluate its length (50-60 characters is ideal), %s\n", p.title)
	fmt.Fprintf(&sb, "   * Meta Description: Evaluate its length (150-160 characters is ideal), %s if it contains a compelling call-to-action.\n", p.meta)
	fmt.Fprintf(&sb, "   * Headings: Check for a single H1, the structure of H2s%s.\n", p.headings)
	fmt.Fprintf(&sb, "   * Image Alt Texts: Analyze if images likely have descriptive%s alt text.\n", p.imageAlts)
	sb.WriteString("2. **Content Analysis:**\n")
	fmt.Fprintf(&sb, "   * Keyword Density: %s\n", p.keywordDensity)
	sb.WriteString("   * Readability: Estimate the content's readability level (e.g., Flesch-Kincaid). Is it appropriate for the target audience?\n")
	sb.WriteString("   * Content Length: Evaluate if the content seems comprehensive enough for the topic.\n")
	sb.WriteString("3. **Overall Score:** Provide an overall SEO score out of 100 based on your complete analysis.\n")
	fmt.Fprintf(&sb, "4. **Recommendations:** List the top 3-5 most critical and actionable recommendations to %s.\n\n", p.recommendation)
	sb.WriteString("Your response MUST be a single JSON object inside a markdown code block (```json ... ```). The JSON object must strictly adhere to this structure:\n")
	sb.WriteString(responseLayout)
	sb.WriteString("\n")

	return sb.String()
}
