// Package similarity provides the scoring backends used by the resolver's
// fallback stage. A Scorer returns a value in [0,1]; higher means the two
// strings are more likely to name the same work.
package similarity

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"titlematch/src/internal/sanitize"
	"titlematch/src/internal/stringsx"
)

// Scorer abstracts the similarity model so tests can fake it.
type Scorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// Backend names accepted by New.
const (
	BackendNone    = "none"
	BackendLexical = "lexical"
	BackendHTTP    = "http"
	BackendOpenAI  = "openai"
)

// DefaultEmbeddingModel is used by the openai backend when no model is set.
const DefaultEmbeddingModel = "text-embedding-3-small"

// Options selects and configures a backend.
type Options struct {
	Backend string
	URL     string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// New returns the configured backend. The "none" backend (or an empty name)
// yields a nil Scorer, which disables the fallback stage.
func New(o Options) (Scorer, error) {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	switch strings.ToLower(strings.TrimSpace(o.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendLexical:
		return NewLexical(), nil
	case BackendHTTP:
		u := sanitize.CleanURL(o.URL)
		if u == "" {
			return nil, fmt.Errorf("similarity: http backend needs a valid url, got %q", o.URL)
		}
		return &HTTP{URL: u, Client: &http.Client{Timeout: timeout}}, nil
	case BackendOpenAI:
		key := stringsx.FirstNonEmpty(o.APIKey, os.Getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("similarity: OPENAI_API_KEY not set; export it to use the openai backend")
		}
		return NewOpenAI(key, stringsx.FirstNonEmpty(o.Model, DefaultEmbeddingModel), timeout), nil
	default:
		return nil, fmt.Errorf("similarity: unknown backend %q", o.Backend)
	}
}

// cosine returns the cosine of the angle between a and b clamped to [0,1].
// Mismatched or zero vectors score 0.
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
