package similarity

import (
	"context"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Lexical scores strings by the cosine of their stemmed term-frequency
// vectors. It needs no model and is deterministic, which makes it the
// offline default for the fallback stage.
type Lexical struct {
	Language string
}

func NewLexical() *Lexical { return &Lexical{Language: "english"} }

func (l *Lexical) Score(_ context.Context, a, b string) (float64, error) {
	va, vb := l.vector(a), l.vector(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0, nil
	}
	terms := make([]string, 0, len(va)+len(vb))
	for t := range va {
		terms = append(terms, t)
	}
	for t := range vb {
		if _, ok := va[t]; !ok {
			terms = append(terms, t)
		}
	}
	x := make([]float64, len(terms))
	y := make([]float64, len(terms))
	for i, t := range terms {
		x[i] = va[t]
		y[i] = vb[t]
	}
	return cosine(x, y), nil
}

func (l *Lexical) vector(s string) map[string]float64 {
	v := map[string]float64{}
	for _, tok := range Tokenize(s) {
		if !isWord(tok) {
			continue
		}
		v[l.stem(tok)]++
	}
	return v
}

func (l *Lexical) stem(tok string) string {
	lang := l.Language
	if lang == "" {
		lang = "english"
	}
	st, err := snowball.Stem(tok, lang, true)
	if err != nil || st == "" {
		return tok
	}
	return st
}

var punctSplitter = strings.NewReplacer(".", " .", "?", " ?", ",", " ,", "'", " '")

// Tokenize lower-cases s and splits it on whitespace after detaching
// periods, question marks, commas and apostrophes into their own tokens.
func Tokenize(s string) []string {
	return strings.Fields(punctSplitter.Replace(strings.ToLower(s)))
}

func isWord(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
