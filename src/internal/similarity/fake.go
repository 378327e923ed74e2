package similarity

import "context"

// Pair is an ordered (window, title) argument pair.
type Pair struct{ A, B string }

// Fake implements Scorer for tests with scripted scores.
type Fake struct {
	Scores  map[Pair]float64
	Default float64
	Err     error
	Calls   []Pair
}

func (f *Fake) Score(_ context.Context, a, b string) (float64, error) {
	f.Calls = append(f.Calls, Pair{A: a, B: b})
	if f.Err != nil {
		return 0, f.Err
	}
	if v, ok := f.Scores[Pair{A: a, B: b}]; ok {
		return v, nil
	}
	return f.Default, nil
}
