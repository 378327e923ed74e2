package similarity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
)

// OpenAI scores two strings by the cosine similarity of their embeddings.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds an embeddings-backed scorer. Extra request options (base
// URL, retries) are appended after the key and timeout.
func NewOpenAI(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) *OpenAI {
	all := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeout > 0 {
		all = append(all, option.WithRequestTimeout(timeout))
	}
	all = append(all, opts...)
	return &OpenAI{client: openai.NewClient(all...), model: model}
}

func (o *OpenAI) Score(ctx context.Context, a, b string) (float64, error) {
	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{a, b}},
		Model: openai.EmbeddingModel(o.model),
	})
	if err != nil {
		return 0, errors.Wrap(err, "openai embeddings failed")
	}
	if len(resp.Data) != 2 {
		return 0, fmt.Errorf("openai embeddings: want 2 vectors, got %d", len(resp.Data))
	}
	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })
	return cosine(data[0].Embedding, data[1].Embedding), nil
}
