package persona

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// Budget extraction constants, all in 만원 (10,000 KRW) units.
const (
	budgetFloor      = 100
	budgetDefaultMin = 1000
	budgetDefaultMax = 5000
	budgetSpreadLow  = 0.8
	budgetSpreadHigh = 1.2
)

// amountPattern captures a number followed by a Korean monetary unit.
// Longest units first so "천만" is not consumed as "만".
var amountPattern = regexp.MustCompile(`([0-9]+(?:,[0-9]{3})*(?:\.[0-9]+)?)\s*(억|천만|만)\s*원?`)

// unit multipliers into 만원.
var unitMultipliers = map[string]float64{
	"억":  10000,
	"천만": 1000,
	"만":  1,
}

// ExtractBudget scans free text for unit-qualified amounts and derives a
// usable price range. The largest unit-qualified literal is the anchor and
// the range is [0.8*anchor, 1.2*anchor], floored at budgetFloor. Text with
// no recognizable amount yields the default range. Never fails.
func ExtractBudget(text string) contractx.BudgetRange {
	anchor := 0.0
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		amount := value * unitMultipliers[m[2]]
		if amount > anchor {
			anchor = amount
		}
	}

	if anchor <= 0 {
		return contractx.BudgetRange{Min: budgetDefaultMin, Max: budgetDefaultMax}
	}

	min := int(anchor * budgetSpreadLow)
	max := int(anchor * budgetSpreadHigh)
	if min < budgetFloor {
		min = budgetFloor
	}
	if max < min {
		max = min
	}
	return contractx.BudgetRange{Min: min, Max: max}
}
