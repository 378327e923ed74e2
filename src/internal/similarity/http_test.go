package similarity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"titlematch/src/internal/httpx"
)

type testHTTPDoer struct {
	status int
	body   string
	seen   *http.Request
	sent   scoreRequest
}

func (t *testHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	t.seen = req
	_ = json.NewDecoder(req.Body).Decode(&t.sent)
	return &http.Response{StatusCode: t.status, Body: io.NopCloser(strings.NewReader(t.body)), Header: make(http.Header)}, nil
}

func TestHTTPScore(t *testing.T) {
	d := &testHTTPDoer{status: 200, body: `{"score": 0.87}`}
	h := &HTTP{URL: "http://scorer.local/score", Client: d}
	got, err := h.Score(context.Background(), "window text", "Entry Title")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.87 {
		t.Fatalf("score: %v", got)
	}
	if d.seen.Method != http.MethodPost || d.seen.Header.Get("User-Agent") != httpx.UserAgent {
		t.Fatalf("request: %s %v", d.seen.Method, d.seen.Header)
	}
	if d.sent.TextA != "window text" || d.sent.TextB != "Entry Title" {
		t.Fatalf("payload: %+v", d.sent)
	}
}

func TestHTTPScoreErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"status", 500, "overloaded"},
		{"bad json", 200, "{"},
		{"missing score", 200, `{"value": 1}`},
		{"out of range", 200, `{"score": 1.5}`},
	}
	for _, c := range cases {
		h := &HTTP{URL: "http://scorer.local/score", Client: &testHTTPDoer{status: c.status, body: c.body}}
		if _, err := h.Score(context.Background(), "a", "b"); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}
