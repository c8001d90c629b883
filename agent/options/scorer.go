package options

import (
	"strings"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// Scoring thresholds. Highlight and missing-critical are driven by persona
// relevance; the value tiers bucket the final 0-100 score.
const (
	highlightThreshold = 85.0
	criticalThreshold  = 90.0

	tierExcellentFloor = 85.0
	tierGoodFloor      = 70.0
	tierFairFloor      = 50.0
)

// Value tier labels.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierFair      = "fair"
	TierBasic     = "basic"
)

// Score computes the option-value fit of a candidate's option labels for a
// persona. Matching is case-insensitive substring, order-independent - a
// documented limitation of the label data, not something to tighten here:
// listing sites emit labels like "파노라마썬루프(개방형)" that must still hit
// the "썬루프" catalog entry.
func Score(entries []CatalogEntry, persona contractx.PersonaID, optionLabels []string) contractx.OptionScore {
	labels := make([]string, 0, len(optionLabels))
	for _, l := range optionLabels {
		labels = append(labels, strings.ToLower(l))
	}

	var maxPossible, achieved float64
	var highlights, missingCritical []string

	for _, entry := range entries {
		relevance, ok := entry.PersonaRelevance[persona]
		if !ok {
			continue
		}
		weighted := entry.MarketPopularity * relevance
		maxPossible += weighted

		if hasOption(labels, entry.Name) {
			achieved += weighted
			if relevance >= highlightThreshold {
				highlights = append(highlights, entry.Name)
			}
		} else if relevance >= criticalThreshold {
			missingCritical = append(missingCritical, entry.Name)
		}
	}

	total := 0.0
	if maxPossible > 0 {
		total = achieved / maxPossible * 100
	}

	return contractx.OptionScore{
		Total:           total,
		Tier:            valueTier(total),
		Highlights:      highlights,
		MissingCritical: missingCritical,
	}
}

func hasOption(labels []string, name string) bool {
	needle := strings.ToLower(name)
	for _, l := range labels {
		if strings.Contains(l, needle) || strings.Contains(needle, l) {
			return true
		}
	}
	return false
}

func valueTier(total float64) string {
	switch {
	case total >= tierExcellentFloor:
		return TierExcellent
	case total >= tierGoodFloor:
		return TierGood
	case total >= tierFairFloor:
		return TierFair
	default:
		return TierBasic
	}
}
