package model

import (
	"math"
	"strings"
	"unicode"
)

// TFIDF turns raw text into a sparse, l2-normalized term-frequency vector
// using a vocabulary and inverse document frequencies captured at training
// time. Tokens outside the vocabulary are ignored.
type TFIDF struct {
	Vocab     map[string]int `json:"vocabulary"`
	IDF       []float64      `json:"idf"`
	NgramMin  int            `json:"ngram_min"`
	NgramMax  int            `json:"ngram_max"`
	Sublinear bool           `json:"sublinear_tf"`
}

// Transform vectorizes text into vocabulary-index weighted counts.
func (m *TFIDF) Transform(text string) (map[int]float64, error) {
	if len(m.Vocab) == 0 {
		return nil, ErrEmptyModel
	}

	counts := make(map[int]int)
	tokens := tokenize(text)
	lo, hi := m.NgramMin, m.NgramMax
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if idx, ok := m.Vocab[term]; ok {
				counts[idx]++
			}
		}
	}

	vec := make(map[int]float64, len(counts))
	norm := 0.0
	for idx, count := range counts {
		tf := float64(count)
		if m.Sublinear {
			tf = 1 + math.Log(tf)
		}
		w := tf
		if idx < len(m.IDF) {
			w *= m.IDF[idx]
		}
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec, nil
}

// tokenize lowercases and splits on non-alphanumeric runes, keeping tokens of
// two or more characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
