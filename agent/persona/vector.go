package persona

import (
	"math"
	"sort"
	"strings"
	"unicode"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// Vector similarity constants. perTermIDF is a fixed approximation: there is
// no corpus at request time, so every term carries the same inverse-frequency
// constant instead of a corpus-derived IDF. Keep as-is without new data.
const (
	perTermIDF       = 3.0
	contextTermBonus = 8.0
	termWeight       = 0.7
	brandWeight      = 0.3
	countLogScale    = 12.0
	weightScale      = 100.0
)

// MatchVector scores the text against every persona's term and brand tables
// and returns the full ranked list, best first, so fusion can see runner-ups.
func MatchVector(text string, profiles []Profile) []contractx.MatchResult {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	normalized := strings.ToLower(text)

	results := make([]contractx.MatchResult, 0, len(profiles))
	for _, p := range profiles {
		score, matched := similarity(normalized, freq, p)
		if score <= 0 {
			continue
		}
		results = append(results, contractx.MatchResult{
			PersonaID:    p.ID,
			Score:        score,
			Confidence:   math.Min(score, 90),
			Method:       contractx.MethodVector,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func similarity(text string, freq map[string]int, p Profile) (float64, []string) {
	var termScore float64
	var matched []string

	for term, weight := range p.Keywords {
		tf := termFrequency(freq, term)
		if tf == 0 {
			continue
		}
		termScore += float64(tf) * weight * perTermIDF
		matched = append(matched, term)
	}
	for _, term := range p.ContextTerms {
		if strings.Contains(text, term) {
			termScore += contextTermBonus
			matched = append(matched, term)
		}
	}

	var brandScore float64
	for brand, bias := range p.BrandBias {
		if !strings.Contains(text, brand) {
			continue
		}
		switch bias.Kind {
		case BiasCount:
			brandScore += math.Log1p(bias.Value) * countLogScale
		case BiasWeight:
			brandScore += bias.Value * weightScale
		}
		matched = append(matched, brand)
	}

	score := termWeight*clamp100(termScore) + brandWeight*clamp100(brandScore)
	return clamp100(score), matched
}

// termFrequency counts tokens containing the term. Korean is agglutinative,
// so containment rather than equality is the useful match.
func termFrequency(freq map[string]int, term string) int {
	n := 0
	for tok, c := range freq {
		if strings.Contains(tok, term) {
			n += c
		}
	}
	return n
}

// tokenize lowercases, strips punctuation, and drops single-rune tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func clamp100(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
