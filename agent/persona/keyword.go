package persona

import (
	"strings"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// keywordRule is one row of the ordered decision table. A rule fires when any
// primary combination fully co-occurs in the text, or when at least
// minSecondary of its secondary terms hit and the budget gate (if set)
// passes. First satisfied rule wins; no partial credit.
type keywordRule struct {
	persona      contractx.PersonaID
	confidence   float64
	primary      [][]string // each inner slice: all terms must co-occur
	secondary    []string
	minSecondary int
	budgetGate   func(contractx.BudgetRange) bool
}

// keywordRules is evaluated top-down, short-circuit. Order encodes priority.
var keywordRules = []keywordRule{
	{
		persona:    contractx.PersonaCEOExecutive,
		confidence: 85,
		primary: [][]string{
			{"bmw", "골프"},
			{"벤츠", "골프"},
			{"제네시스", "골프"},
			{"법인", "골프"},
		},
		secondary:    []string{"의전", "임원", "접대", "법인", "비즈니스", "대표"},
		minSecondary: 2,
		budgetGate: func(b contractx.BudgetRange) bool {
			return b.Max >= 4000
		},
	},
	{
		persona:    contractx.PersonaFamilyFocused,
		confidence: 80,
		primary: [][]string{
			{"카시트"},
			{"유모차"},
			{"가족", "아이"},
		},
		secondary:    []string{"가족", "아이", "안전", "통학", "넓은"},
		minSecondary: 2,
	},
	{
		persona:    contractx.PersonaLeisureOutdoor,
		confidence: 80,
		primary: [][]string{
			{"차박"},
			{"캠핑"},
			{"레저", "suv"},
		},
		secondary:    []string{"낚시", "적재", "레저", "suv"},
		minSecondary: 2,
	},
	{
		persona:    contractx.PersonaEcoPractical,
		confidence: 75,
		primary: [][]string{
			{"경차", "연비"},
		},
		secondary:    []string{"연비", "경제적", "저렴", "유지비", "실용"},
		minSecondary: 2,
		budgetGate: func(b contractx.BudgetRange) bool {
			return b.Min <= 3000
		},
	},
	{
		persona:    contractx.PersonaYoungProfessional,
		confidence: 70,
		primary: [][]string{
			{"첫차"},
			{"사회초년생"},
		},
		secondary:    []string{"출퇴근", "드라이브", "디자인", "옵션"},
		minSecondary: 2,
	},
}

// MatchKeyword evaluates the ordered rule table against the text and budget.
// It returns zero or one persona with the rule's fixed confidence; runners-up
// are never ranked.
func MatchKeyword(text string, budget contractx.BudgetRange) (contractx.MatchResult, bool) {
	normalized := strings.ToLower(text)

	for _, rule := range keywordRules {
		if terms, ok := rule.match(normalized, budget); ok {
			return contractx.MatchResult{
				PersonaID:    rule.persona,
				Score:        rule.confidence,
				Confidence:   rule.confidence,
				Method:       contractx.MethodKeyword,
				Evidence:     []string{"rule:" + string(rule.persona)},
				MatchedTerms: terms,
			}, true
		}
	}
	return contractx.MatchResult{}, false
}

func (r keywordRule) match(text string, budget contractx.BudgetRange) ([]string, bool) {
	for _, combo := range r.primary {
		if containsAll(text, combo) {
			return combo, true
		}
	}

	if r.minSecondary <= 0 || len(r.secondary) == 0 {
		return nil, false
	}
	if r.budgetGate != nil && !r.budgetGate(budget) {
		return nil, false
	}

	var hits []string
	for _, term := range r.secondary {
		if strings.Contains(text, term) {
			hits = append(hits, term)
		}
	}
	if len(hits) >= r.minSecondary {
		return hits, true
	}
	return nil, false
}

func containsAll(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return len(terms) > 0
}
