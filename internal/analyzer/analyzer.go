// Package analyzer guesses the dominant content type of a PDF from its
// filename and size. It is a stand-in for real document analysis: the
// result is advisory and only influences format recommendations.
package analyzer

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/welovepdf/pdfconv/internal/models"
)

const defaultDelay = 300 * time.Millisecond

// Analyzer infers a content type from file metadata.
//
// Delay simulates analysis latency; RandFloat drives the weighted guess
// for files no heuristic matches. Both are injectable for tests.
type Analyzer struct {
	Delay     time.Duration
	RandFloat func() float64
}

func New() *Analyzer {
	return &Analyzer{Delay: defaultDelay, RandFloat: rand.Float64}
}

// AnalyzeContent returns the guessed content type for a file. Invalid
// metadata falls back to ContentMixed rather than failing: the guess is at
// worst unhelpful, never wrong enough to block a conversion.
func (a *Analyzer) AnalyzeContent(ctx context.Context, name string, size int64) (models.ContentType, error) {
	if name == "" || size < 0 {
		return models.ContentMixed, nil
	}

	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay):
		case <-ctx.Done():
			return models.ContentMixed, ctx.Err()
		}
	}

	lower := strings.ToLower(name)
	sizeMB := float64(size) / (1024 * 1024)

	switch {
	case containsAny(lower, "scan", "image", "photo"):
		return models.ContentImage, nil
	case containsAny(lower, "table", "data", "report", "excel"):
		return models.ContentTable, nil
	case containsAny(lower, "document", "text", "letter"):
		return models.ContentText, nil
	}

	// Large files tend to be image-heavy, small ones text-only.
	if sizeMB > 10 {
		if a.RandFloat() > 0.5 {
			return models.ContentImage, nil
		}
		return models.ContentMixed, nil
	}
	if sizeMB < 1 {
		return models.ContentText, nil
	}

	// Weighted guess: 40% text, 20% each for the rest.
	r := a.RandFloat()
	switch {
	case r <= 0.4:
		return models.ContentText, nil
	case r <= 0.6:
		return models.ContentImage, nil
	case r <= 0.8:
		return models.ContentTable, nil
	default:
		return models.ContentMixed, nil
	}
}

// Description returns the UI blurb for a content type.
func Description(ct models.ContentType) string {
	switch ct {
	case models.ContentText:
		return "Text-heavy document with paragraphs and formatting"
	case models.ContentImage:
		return "Image-heavy document with photos or scanned content"
	case models.ContentTable:
		return "Data-heavy document with tables and structured information"
	case models.ContentMixed:
		return "Mixed content with text, images, and data"
	default:
		return "Unknown content type"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
