package similarity

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v3/option"
)

func TestOpenAIScore(t *testing.T) {
	var gotInput []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotInput = body.Input
		w.Header().Set("Content-Type", "application/json")
		// returned out of order on purpose
		_, _ = w.Write([]byte(`{"object":"list","model":"m","data":[
			{"object":"embedding","index":1,"embedding":[1,1]},
			{"object":"embedding","index":0,"embedding":[1,0]}],
			"usage":{"prompt_tokens":2,"total_tokens":2}}`))
	}))
	defer srv.Close()

	o := NewOpenAI("test-key", "m", 0, option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	got, err := o.Score(context.Background(), "window", "title")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if want := 1 / math.Sqrt2; math.Abs(got-want) > 1e-9 {
		t.Fatalf("score: got %v want %v", got, want)
	}
	if len(gotInput) != 2 || gotInput[0] != "window" || gotInput[1] != "title" {
		t.Fatalf("input: %v", gotInput)
	}
}

func TestOpenAIScoreHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	o := NewOpenAI("bad", "m", 0, option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	if _, err := o.Score(context.Background(), "a", "b"); err == nil {
		t.Fatalf("expected error from 401")
	}
}
