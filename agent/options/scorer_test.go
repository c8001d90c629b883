package options

import (
	"testing"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

func TestScoreNoOptions(t *testing.T) {
	t.Parallel()

	got := Score(Catalog(), contractx.PersonaCEOExecutive, nil)
	if got.Total != 0 {
		t.Fatalf("Total = %v, want 0 for a candidate with no options", got.Total)
	}
	if got.Tier != TierBasic {
		t.Fatalf("Tier = %s, want %s", got.Tier, TierBasic)
	}
	if len(got.Highlights) != 0 {
		t.Fatalf("Highlights = %v, want none", got.Highlights)
	}
}

func TestScoreAllOptions(t *testing.T) {
	t.Parallel()

	all := make([]string, 0, len(Catalog()))
	for _, e := range Catalog() {
		all = append(all, e.Name)
	}

	for _, persona := range []contractx.PersonaID{
		contractx.PersonaCEOExecutive,
		contractx.PersonaFamilyFocused,
		contractx.PersonaEcoPractical,
	} {
		got := Score(Catalog(), persona, all)
		if got.Total != 100 {
			t.Fatalf("persona %s: Total = %v, want 100 with every option present", persona, got.Total)
		}
		if got.Tier != TierExcellent {
			t.Fatalf("persona %s: Tier = %s, want %s", persona, got.Tier, TierExcellent)
		}
		if len(got.MissingCritical) != 0 {
			t.Fatalf("persona %s: MissingCritical = %v, want none", persona, got.MissingCritical)
		}
	}
}

func TestScoreSubstringMatch(t *testing.T) {
	t.Parallel()

	// Listing-style label must hit the bare catalog entry.
	got := Score(Catalog(), contractx.PersonaYoungProfessional, []string{"파노라마썬루프(개방형)"})
	if got.Total <= 0 {
		t.Fatal("substring label did not match the 썬루프 catalog entry")
	}
}

func TestScoreHighlightAndMissingCritical(t *testing.T) {
	t.Parallel()

	// 긴급제동보조 has relevance 95 for family_focused: present -> highlight,
	// absent -> missing-critical.
	withIt := Score(Catalog(), contractx.PersonaFamilyFocused, []string{"긴급제동보조"})
	if !contains(withIt.Highlights, "긴급제동보조") {
		t.Fatalf("Highlights = %v, want 긴급제동보조 recorded", withIt.Highlights)
	}

	withoutIt := Score(Catalog(), contractx.PersonaFamilyFocused, []string{"열선시트"})
	if !contains(withoutIt.MissingCritical, "긴급제동보조") {
		t.Fatalf("MissingCritical = %v, want 긴급제동보조 recorded", withoutIt.MissingCritical)
	}
}

func TestScorePersonaDependence(t *testing.T) {
	t.Parallel()

	labels := []string{"스마트크루즈컨트롤", "통풍시트", "전동트렁크"}
	exec := Score(Catalog(), contractx.PersonaCEOExecutive, labels)
	eco := Score(Catalog(), contractx.PersonaEcoPractical, labels)
	if exec.Total <= eco.Total {
		t.Fatalf("executive-leaning options scored %v for executive vs %v for eco_practical", exec.Total, eco.Total)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
