package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Outcome describes how a model reply was interpreted
type Outcome string

const (
	OutcomeParsed      Outcome = "parsed"
	OutcomeNoJSONBlock Outcome = "no_json_block"
	OutcomeInvalidJSON Outcome = "invalid_json"
)

var errNullAnalysis = errors.New("decode analysis: json block is null")

var jsonFence = regexp.MustCompile("(?s)```json\\r?\\n(.*?)\\r?\\n```")

// ExtractJSONBlock returns the body of the first ```json fenced block in text
func ExtractJSONBlock(text string) (string, bool) {
	m := jsonFence.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DecodeAnalysis parses a fenced block body into a SeoAnalysis.
// Fields the model adds beyond SeoAnalysis are ignored and values are not range checked.
// A field of the wrong type is left at its zero value and reported through mismatch;
// only syntax errors and a top-level value that is not an object fail.
func DecodeAnalysis(block string) (analysis *SeoAnalysis, mismatch error, err error) {
	if err := json.Unmarshal([]byte(block), &analysis); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" || analysis == nil {
			return nil, nil, fmt.Errorf("decode analysis: %w", err)
		}
		mismatch = err
	}
	if analysis == nil {
		return nil, nil, errNullAnalysis
	}
	return analysis, mismatch, nil
}

// Interpret turns a raw model reply into an analysis. A nil analysis means the reply was unusable;
// the outcome says why.
func (a *Analyzer) Interpret(text string) (*SeoAnalysis, Outcome) {
	block, ok := ExtractJSONBlock(text)
	if !ok {
		a.log.WithField("reply_length", len(text)).Warn("no json block found in model response")
		return nil, OutcomeNoJSONBlock
	}

	analysis, mismatch, err := DecodeAnalysis(block)
	if err != nil {
		a.log.WithError(err).Warn("failed to parse json from model response")
		return nil, OutcomeInvalidJSON
	}
	if mismatch != nil {
		a.log.WithError(mismatch).Warn("model response has fields of unexpected type")
	}

	return analysis, OutcomeParsed
}
