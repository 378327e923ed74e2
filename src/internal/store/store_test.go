package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"titlematch/src/internal/schema"
)

const sampleBib = `% library export
@comment{ignored {nested} block}
@string{acm = "ACM"}
@article{he2016,
  title = {Deep Residual Learning for {Image} Recognition},
  author = {He, Kaiming and Zhang, Xiangyu and Ren, Shaoqing},
  year = 2016,
}

@InProceedings{hamilton2017,
  Title = "Inductive Representation Learning
           on Large Graphs",
  Author = {Hamilton, Will},
  editor = {Guyon, I. and Luxburg, U. V.},
  pages = {1024--1034}
}
@book(knuth, title={The \{TeX\}book}, publisher={Addison})
`

func TestParseBib(t *testing.T) {
	es, err := ParseBib(sampleBib)
	if err != nil {
		t.Fatalf("ParseBib: %v", err)
	}
	if len(es) != 3 {
		t.Fatalf("want 3 entries, got %d: %+v", len(es), es)
	}
	if es[0].Type != "article" || es[0].Key != "he2016" {
		t.Fatalf("first entry: %+v", es[0])
	}
	if es[0].Title() != "Deep Residual Learning for {Image} Recognition" {
		t.Fatalf("braces should be kept by the parser: %q", es[0].Title())
	}
	if a, _ := es[0].Author(); a != "He, Kaiming and Zhang, Xiangyu and Ren, Shaoqing" {
		t.Fatalf("author: %q", a)
	}
	if y, _ := es[0].Field("year"); y != "2016" {
		t.Fatalf("bare year: %q", y)
	}
	if es[1].Type != "inproceedings" || es[1].Title() != "Inductive Representation Learning on Large Graphs" {
		t.Fatalf("second entry: %+v", es[1])
	}
	if ed, ok := es[1].Editor(); !ok || ed != "Guyon, I. and Luxburg, U. V." {
		t.Fatalf("editor: %q %v", ed, ok)
	}
	if es[2].Key != "knuth" || es[2].Title() != "The {TeX}book" {
		t.Fatalf("paren entry: %+v", es[2])
	}
}

func TestParseBibConcatenationAndMacros(t *testing.T) {
	src := `@STRING{jmlr = {Journal of Machine} # " Learning Research"}
@string(gnn = "Graph")
@article{a,
  title = "Deep " # gnn # {s},
  journal = jmlr,
  month = oct,
  publisher = unknownmacro,
  year = 2020
}
`
	es, err := ParseBib(src)
	if err != nil {
		t.Fatalf("ParseBib: %v", err)
	}
	if len(es) != 1 {
		t.Fatalf("want 1 entry, got %+v", es)
	}
	want := map[string]string{
		"title":     "Deep Graphs",
		"journal":   "Journal of Machine Learning Research",
		"month":     "October",
		"publisher": "unknownmacro",
		"year":      "2020",
	}
	for k, v := range want {
		if got, _ := es[0].Field(k); got != v {
			t.Fatalf("%s: got %q want %q", k, got, v)
		}
	}
}

func TestParseBibConcatenationErrors(t *testing.T) {
	bad := []string{
		`@article{a, title = "Deep " # }`,
		`@article{a, title = "Deep " # "Graphs}`,
		`@string{x = }`,
	}
	for _, in := range bad {
		if _, err := ParseBib(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseBibErrors(t *testing.T) {
	bad := []string{
		"@article{k, title = {unterminated",
		"@article{k title = {x}}",
		"@article{k, title {x}}",
		"@article{k, title = {x} author = {y}}",
		"@{k, title = {x}}",
		"@article k",
	}
	for _, in := range bad {
		if _, err := ParseBib(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
	if es, err := ParseBib(""); err != nil || len(es) != 0 {
		t.Fatalf("empty source: %v %v", es, err)
	}
}

func TestLoadFileParseErrorLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	src := "@article{a, title = {A}}\n\n@article{b,\n  title {B}\n}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := BibTeX{}.Load(path)
	var pe *schema.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if pe.Path != path || pe.Line != 4 {
		t.Fatalf("unexpected location: %s:%d", pe.Path, pe.Line)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := BibTeX{}.Load(filepath.Join(t.TempDir(), "nope.bib"))
	var pe *schema.ParseError
	if !errors.As(err, &pe) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ParseError wrapping ErrNotExist, got %v", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, body string) {
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.bib", "@misc{b1, title={B One}}")
	write("a.bib", "@misc{a1, title={A One}}\n@misc{a2, title={A Two}}")
	write("sub/c.BIB", "@misc{c1, title={C One}}")
	write("notes.txt", "@misc{x, title={ignored}}")

	es, err := BibTeX{}.Load(dir)
	if err != nil {
		t.Fatalf("Load dir: %v", err)
	}
	var keys []string
	for _, e := range es {
		keys = append(keys, e.Key)
	}
	want := []string{"a1", "a2", "b1", "c1"}
	if len(keys) != len(want) {
		t.Fatalf("keys: got %v want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys: got %v want %v", keys, want)
		}
	}
}
