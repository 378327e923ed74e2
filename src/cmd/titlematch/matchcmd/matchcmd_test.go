package matchcmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"titlematch/src/internal/pipeline"
	"titlematch/src/internal/schema"
	"titlematch/src/internal/similarity"
)

const bibText = `@article{smith21,
  title = {{Graph} Neural Networks in Practice},
  author = {Smith, Jane and Doe, John}
}
@book{roe19,
  title = {Widgets Explained},
  editor = {Roe, Ann},
  author = {Poe, Ed}
}
`

func setup(t *testing.T, docs map[string]string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(dir)
	bib := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(bib, []byte(bibText), 0o644); err != nil {
		t.Fatal(err)
	}
	for name, body := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, bib
}

func run(args ...string) (string, error) {
	cmd := New()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestMatchTable(t *testing.T) {
	dir, bib := setup(t, map[string]string{"a.txt": "Research Article\nGraph Neural Networks\nJane Smith\n"})
	out, err := run("--bib", bib, "--variant", "basic", filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !strings.Contains(out, "Graph Neural Networks in Practice") || !strings.Contains(out, "Smith, Jane") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.HasPrefix(out, "document") {
		t.Fatalf("missing header:\n%s", out)
	}

	out, err = run("--bib", bib, "--variant", "basic", "--short-authors", filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !strings.Contains(out, "Smith, J.") || strings.Contains(out, "Smith, Jane") {
		t.Fatalf("authors not shortened:\n%s", out)
	}
}

func TestMatchJSONAndSentinel(t *testing.T) {
	dir, bib := setup(t, map[string]string{
		"a.txt":     "Graph Neural Networks\n",
		"blank.txt": "1 Introduction\nwww.example.com\n",
	})
	out, err := run("--bib", bib, "--format", "json", "--similarity", "none",
		filepath.Join(dir, "a.txt"), filepath.Join(dir, "blank.txt"))
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var reports []pipeline.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(reports) != 2 {
		t.Fatalf("want 2 reports, got %d", len(reports))
	}
	if reports[0].Matches[0].Title != "Graph Neural Networks in Practice" {
		t.Fatalf("first: %+v", reports[0])
	}
	if reports[1].TitleGuess != schema.UnknownTitle || !reports[1].Matches[0].IsNoMatch() {
		t.Fatalf("second: %+v", reports[1])
	}
}

func TestMatchSimilarityFallbackYAML(t *testing.T) {
	old := newScorer
	t.Cleanup(func() { newScorer = old })
	fake := &similarity.Fake{Scores: map[similarity.Pair]float64{
		{A: "Explaining Widgets Ann Roe Widget Press", B: "Widgets Explained"}: 0.93,
	}}
	newScorer = func(similarity.Options) (similarity.Scorer, error) { return fake, nil }

	dir, bib := setup(t, map[string]string{"w.txt": "Explaining Widgets\nAnn Roe\nWidget Press\n"})
	out, err := run("--bib", bib, "--format", "yaml", filepath.Join(dir, "w.txt"))
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var reports []pipeline.Report
	if err := yaml.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	got := reports[0].Matches
	if len(got) != 1 || got[0].Title != "Widgets Explained" || got[0].Author != "Roe, Ann" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestMatchErrors(t *testing.T) {
	dir, bib := setup(t, map[string]string{"a.txt": "Graph Neural Networks\n", "empty.txt": ""})
	if _, err := run(filepath.Join(dir, "a.txt")); err == nil {
		t.Fatalf("expected --bib required error")
	}
	if _, err := run("--bib", bib, "--format", "xml", filepath.Join(dir, "a.txt")); err == nil {
		t.Fatalf("expected format error")
	}
	_, err := run("--bib", bib, filepath.Join(dir, "empty.txt"))
	var ee *schema.ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("want ExtractionError, got %v", err)
	}
	broken := filepath.Join(dir, "broken.bib")
	_ = os.WriteFile(broken, []byte("@article{x, title = {unterminated\n"), 0o644)
	_, err = run("--bib", broken, filepath.Join(dir, "a.txt"))
	var pe *schema.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if _, err := run("--bib", bib, "--variant", "fancy", filepath.Join(dir, "a.txt")); err == nil {
		t.Fatalf("expected invalid variant error")
	}
}
