package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "fenced block with prose around it",
			text:  "Intro text\n```json\n{\"overallScore\": 10}\n```\nOutro",
			want:  `{"overallScore": 10}`,
			found: true,
		},
		{
			name:  "first block wins",
			text:  "```json\n{\"a\": 1}\n```\nand again\n```json\n{\"b\": 2}\n```",
			want:  `{"a": 1}`,
			found: true,
		},
		{
			name:  "multiline body",
			text:  "```json\n{\n  \"overallScore\": 5\n}\n```",
			want:  "{\n  \"overallScore\": 5\n}",
			found: true,
		},
		{
			name:  "crlf line endings",
			text:  "```json\r\n{}\r\n```",
			want:  "{}",
			found: true,
		},
		{
			name:  "untagged fence is ignored",
			text:  "```\n{\"overallScore\": 10}\n```",
			found: false,
		},
		{
			name:  "no fence",
			text:  `{"overallScore": 10}`,
			found: false,
		},
		{
			name:  "unterminated fence",
			text:  "```json\n{\"overallScore\": 10}",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONBlock(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAnalysis(t *testing.T) {
	t.Run("ValidObject", func(t *testing.T) {
		analysis, mismatch, err := DecodeAnalysis(`{"overallScore": 88.5, "recommendations": ["b", "a", "c"], "extra": true}`)
		require.NoError(t, err)
		assert.NoError(t, mismatch)
		assert.Equal(t, 88.5, analysis.OverallScore)
		assert.Equal(t, []string{"b", "a", "c"}, analysis.Recommendations)
	})

	t.Run("ScoresAreNotRangeChecked", func(t *testing.T) {
		analysis, _, err := DecodeAnalysis(`{"overallScore": 250, "onPage": {"title": {"analysis": "x", "score": -3}}}`)
		require.NoError(t, err)
		assert.Equal(t, 250.0, analysis.OverallScore)
		assert.Equal(t, -3.0, analysis.OnPage.Title.Score)
	})

	t.Run("EmptyTextIsKept", func(t *testing.T) {
		analysis, _, err := DecodeAnalysis(`{"onPage": {"metaDescription": {"text": "", "analysis": "Missing.", "score": 0}}}`)
		require.NoError(t, err)
		require.NotNil(t, analysis.OnPage.MetaDescription.Text)
		assert.Equal(t, "", *analysis.OnPage.MetaDescription.Text)
		assert.Nil(t, analysis.OnPage.Title.Text)

		out, err := json.Marshal(analysis.OnPage.MetaDescription)
		require.NoError(t, err)
		assert.JSONEq(t, `{"text": "", "analysis": "Missing.", "score": 0}`, string(out))
	})

	t.Run("StringScoreKeepsOtherFields", func(t *testing.T) {
		analysis, mismatch, err := DecodeAnalysis(`{"overallScore": "72", "recommendations": ["one", "two"], "content": {"readability": {"analysis": "ok", "score": 80}}}`)
		require.NoError(t, err)
		require.NotNil(t, analysis)
		assert.Error(t, mismatch)
		assert.Equal(t, 0.0, analysis.OverallScore)
		assert.Equal(t, []string{"one", "two"}, analysis.Recommendations)
		assert.Equal(t, 80.0, analysis.Content.Readability.Score)
	})

	t.Run("ScalarHeadingKeepsOtherFields", func(t *testing.T) {
		analysis, mismatch, err := DecodeAnalysis(`{"overallScore": 64, "onPage": {"headings": {"h1": "Only Title", "h2": ["Intro"], "analysis": "One H1.", "score": 70}}}`)
		require.NoError(t, err)
		require.NotNil(t, analysis)
		assert.Error(t, mismatch)
		assert.Equal(t, 64.0, analysis.OverallScore)
		assert.Nil(t, analysis.OnPage.Headings.H1)
		assert.Equal(t, []string{"Intro"}, analysis.OnPage.Headings.H2)
		assert.Equal(t, 70.0, analysis.OnPage.Headings.Score)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		analysis, _, err := DecodeAnalysis(`{"overallScore": }`)
		assert.Error(t, err)
		assert.Nil(t, analysis)
	})

	t.Run("Truncated", func(t *testing.T) {
		analysis, _, err := DecodeAnalysis(`{"overallScore": 72, "recommendations": ["a"`)
		assert.Error(t, err)
		assert.Nil(t, analysis)
	})

	t.Run("Null", func(t *testing.T) {
		analysis, _, err := DecodeAnalysis(`null`)
		assert.Error(t, err)
		assert.Nil(t, analysis)
	})

	// Top-level values that are not objects cannot be an analysis at all.
	t.Run("NotAnObject", func(t *testing.T) {
		for _, block := range []string{`["overallScore"]`, `"report"`, `72`} {
			analysis, _, err := DecodeAnalysis(block)
			assert.Error(t, err, block)
			assert.Nil(t, analysis, block)
		}
	})
}

func TestInterpret(t *testing.T) {
	a := New(nil, nil)

	analysis, outcome := a.Interpret(sampleReply)
	require.NotNil(t, analysis)
	assert.Equal(t, OutcomeParsed, outcome)
	assert.Equal(t, 72.0, analysis.OverallScore)

	analysis, outcome = a.Interpret("no fence here")
	assert.Nil(t, analysis)
	assert.Equal(t, OutcomeNoJSONBlock, outcome)

	analysis, outcome = a.Interpret("```json\n{\"overallScore\": }\n```")
	assert.Nil(t, analysis)
	assert.Equal(t, OutcomeInvalidJSON, outcome)

	analysis, outcome = a.Interpret("```json\n{\"overallScore\": \"72\", \"recommendations\": [\"a\"]}\n```")
	require.NotNil(t, analysis)
	assert.Equal(t, OutcomeParsed, outcome)
	assert.Equal(t, []string{"a"}, analysis.Recommendations)

	analysis, outcome = a.Interpret("```json\n{\"onPage\": {\"headings\": {\"h1\": \"Only Title\", \"score\": 50}}}\n```")
	require.NotNil(t, analysis)
	assert.Equal(t, OutcomeParsed, outcome)
	assert.Equal(t, 50.0, analysis.OnPage.Headings.Score)
}
