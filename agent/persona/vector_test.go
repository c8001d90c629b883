package persona

import (
	"testing"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

func TestMatchVectorReturnsRankedList(t *testing.T) {
	t.Parallel()

	results := MatchVector("캠핑 차박 다니기 좋은 suv 적재공간 넓은 차", Profiles())
	if len(results) == 0 {
		t.Fatal("MatchVector() returned nothing")
	}
	if results[0].PersonaID != contractx.PersonaLeisureOutdoor {
		t.Fatalf("top persona = %s, want %s", results[0].PersonaID, contractx.PersonaLeisureOutdoor)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("results not sorted: score[%d]=%v > score[%d]=%v", i, results[i].Score, i-1, results[i-1].Score)
		}
	}
}

func TestMatchVectorBrandBiasContributes(t *testing.T) {
	t.Parallel()

	plain := MatchVector("골프 비즈니스 접대", Profiles())
	branded := MatchVector("벤츠 골프 비즈니스 접대", Profiles())

	plainScore := scoreFor(plain, contractx.PersonaCEOExecutive)
	brandedScore := scoreFor(branded, contractx.PersonaCEOExecutive)
	if brandedScore <= plainScore {
		t.Fatalf("brand mention did not raise score: %v <= %v", brandedScore, plainScore)
	}
}

func TestMatchVectorContextTermBonus(t *testing.T) {
	t.Parallel()

	without := MatchVector("골프 치러 다닐 차", Profiles())
	with := MatchVector("골프백 싣고 골프 치러 다닐 차", Profiles())

	if scoreFor(with, contractx.PersonaCEOExecutive) <= scoreFor(without, contractx.PersonaCEOExecutive) {
		t.Fatal("verbatim context-term hit did not add its bonus")
	}
}

func TestMatchVectorEmptyText(t *testing.T) {
	t.Parallel()

	if results := MatchVector("  ", Profiles()); len(results) != 0 {
		t.Fatalf("MatchVector(blank) = %d results, want 0", len(results))
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	t.Parallel()

	tokens := tokenize("A 차 BMW, 골프!")
	for _, tok := range tokens {
		if len([]rune(tok)) <= 1 {
			t.Fatalf("tokenize kept single-rune token %q", tok)
		}
	}
}

func scoreFor(results []contractx.MatchResult, id contractx.PersonaID) float64 {
	for _, r := range results {
		if r.PersonaID == id {
			return r.Score
		}
	}
	return 0
}
