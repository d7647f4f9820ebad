package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUpstreamUnavailable is returned when the model call fails
	ErrUpstreamUnavailable = errors.New("upstream model unavailable")
	// ErrEmptyResponse is returned when the model answers without any text
	ErrEmptyResponse = fmt.Errorf("%w: empty response", ErrUpstreamUnavailable)
)

// Generator sends a prompt to a generative model with web search grounding
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// Analyzer builds prompts, calls the model once per request and interprets the reply
type Analyzer struct {
	generator Generator
	log       logrus.FieldLogger
}

// New creates an Analyzer backed by generator. A nil logger discards output.
func New(generator Generator, log logrus.FieldLogger) *Analyzer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Analyzer{
		generator: generator,
		log:       log,
	}
}

// Analyze performs an SEO analysis of req.URL through the model.
// It returns a Result with a nil Analysis when the reply could not be interpreted.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	result, _, err := a.AnalyzeWithOutcome(ctx, req)
	return result, err
}

// AnalyzeWithOutcome is Analyze but also reports how the reply was interpreted
func (a *Analyzer) AnalyzeWithOutcome(ctx context.Context, req Request) (*Result, Outcome, error) {
	startTime := time.Now()
	log := a.log.WithFields(logrus.Fields{
		"url":          req.URL,
		"has_keywords": req.HasKeywords(),
	})

	gen, err := a.generator.Generate(ctx, BuildPrompt(req))
	if err != nil {
		if !errors.Is(err, ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		}
		return nil, "", err
	}
	if gen == nil || gen.Text == "" {
		return nil, "", ErrEmptyResponse
	}

	analysis, outcome := a.Interpret(gen.Text)

	chunks := gen.GroundingChunks
	if chunks == nil {
		chunks = []GroundingChunk{}
	}

	log.WithFields(logrus.Fields{
		"outcome":          outcome,
		"grounding_chunks": len(chunks),
		"duration_ms":      time.Since(startTime).Milliseconds(),
	}).Info("analysis completed")

	return &Result{
		Analysis:        analysis,
		GroundingChunks: chunks,
	}, outcome, nil
}
