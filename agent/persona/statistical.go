package persona

import (
	"strings"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// BudgetSegment is the coarse classification of a budget midpoint.
type BudgetSegment string

const (
	SegmentEconomy  BudgetSegment = "economy"
	SegmentStandard BudgetSegment = "standard"
	SegmentLuxury   BudgetSegment = "luxury"
)

// Segment thresholds in 만원, against the budget midpoint.
const (
	economyCeiling = 2000
	luxuryFloor    = 6000
)

// statisticalScoreFloor drops weak hypotheses entirely.
const statisticalScoreFloor = 60

// brandCategory tags for the fixed name lists.
type brandCategory string

const (
	brandPremiumImport brandCategory = "premium_import"
	brandDomestic      brandCategory = "domestic"
	brandNone          brandCategory = ""
)

var premiumImportBrands = []string{"bmw", "벤츠", "메르세데스", "아우디", "포르쉐", "렉서스", "랜드로버", "볼보"}
var domesticBrands = []string{"현대", "기아", "제네시스", "쉐보레", "르노", "kgm", "쌍용"}

// MatchStatistical combines the budget segment with the brand category and
// emits a persona hypothesis only when the two signals are mutually
// consistent. Conflicting or weak signals yield no result - that is the
// normal abstain path, not an error.
func MatchStatistical(text string, budget contractx.BudgetRange) (contractx.MatchResult, bool) {
	segment := ClassifySegment(budget)
	brand, brandName := classifyBrand(strings.ToLower(text))

	persona, score, confidence := hypothesis(segment, brand)
	if persona == "" || score < statisticalScoreFloor {
		return contractx.MatchResult{}, false
	}

	evidence := []string{"segment:" + string(segment)}
	if brandName != "" {
		evidence = append(evidence, "brand:"+brandName)
	}
	return contractx.MatchResult{
		PersonaID:  persona,
		Score:      score,
		Confidence: confidence,
		Method:     contractx.MethodStatistical,
		Evidence:   evidence,
	}, true
}

// ClassifySegment buckets the budget midpoint against fixed thresholds.
func ClassifySegment(budget contractx.BudgetRange) BudgetSegment {
	mid := budget.Mid()
	switch {
	case mid <= economyCeiling:
		return SegmentEconomy
	case mid >= luxuryFloor:
		return SegmentLuxury
	default:
		return SegmentStandard
	}
}

func classifyBrand(text string) (brandCategory, string) {
	for _, b := range premiumImportBrands {
		if strings.Contains(text, b) {
			return brandPremiumImport, b
		}
	}
	for _, b := range domesticBrands {
		if strings.Contains(text, b) {
			return brandDomestic, b
		}
	}
	return brandNone, ""
}

// hypothesis is the consistency table. Luxury spending paired with a premium
// import points at the executive persona; an economy budget with a domestic
// (or unstated) brand points at the practical persona. Everything else is
// either a conflict or too weak to vote.
func hypothesis(segment BudgetSegment, brand brandCategory) (contractx.PersonaID, float64, float64) {
	switch segment {
	case SegmentLuxury:
		if brand == brandPremiumImport {
			return contractx.PersonaCEOExecutive, 80, 72
		}
	case SegmentEconomy:
		if brand == brandDomestic || brand == brandNone {
			return contractx.PersonaEcoPractical, 72, 65
		}
	}
	return "", 0, 0
}
