package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"titlematch/src/internal/httpx"
)

// HTTP calls a scoring service that accepts {"text_a": ..., "text_b": ...}
// and answers {"score": <float in [0,1]>}.
type HTTP struct {
	URL    string
	Client httpx.Doer
}

type scoreRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

type scoreResponse struct {
	Score *float64 `json:"score"`
}

func (h *HTTP) Score(ctx context.Context, a, b string) (float64, error) {
	buf, err := json.Marshal(scoreRequest{TextA: a, TextB: b})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(buf))
	if err != nil {
		return 0, errors.Wrap(err, "similarity request failed")
	}
	httpx.SetJSON(req)
	httpx.SetUA(req)
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "similarity request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("similarity: http %d: %s", resp.StatusCode, string(b))
	}
	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, errors.Wrap(err, "similarity response decode failed")
	}
	if out.Score == nil {
		return 0, fmt.Errorf("similarity: response has no score")
	}
	if *out.Score < 0 || *out.Score > 1 {
		return 0, fmt.Errorf("similarity: score %v outside [0,1]", *out.Score)
	}
	return *out.Score, nil
}
