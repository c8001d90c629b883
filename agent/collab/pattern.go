package collab

import (
	"fmt"
	"strings"

	personax "github.com/carpickhq/carpick-agent/agent/persona"
)

// PatternType classifies a detected session situation.
type PatternType string

const (
	PatternInsufficientInventory   PatternType = "insufficient_inventory"
	PatternConflictingRequirements PatternType = "conflicting_requirements"
)

// Pattern is one detected situation. NeedsUser marks patterns that must
// suspend the pipeline for an external decision.
type Pattern struct {
	Type        PatternType `json:"type"`
	Description string      `json:"description"`
	NeedsUser   bool        `json:"needs_user"`
}

// defaultExpectedInventory applies when the session has no persona profile.
const defaultExpectedInventory = 20

// incompatibility is one row of the fixed requirement-conflict table.
type incompatibility struct {
	a, b        string
	description string
}

var incompatibilityRules = []incompatibility{
	{a: "경차", b: "7인승", description: "경차와 7인승 공간 요구는 양립할 수 없습니다"},
	{a: "경차", b: "적재", description: "경차로는 대형 적재 요구를 만족하기 어렵습니다"},
	{a: "스포츠", b: "카시트", description: "스포츠 주행과 유아 동반 요구가 충돌합니다"},
	{a: "오프로드", b: "연비", description: "오프로드 성능과 고연비 요구가 충돌합니다"},
	{a: "대형", b: "주차", description: "대형 차량과 좁은 주차 환경 요구가 충돌합니다"},
}

// DetectPatterns classifies the session before a round and returns every
// matching pattern. It redirects the next transition: a NeedsUser pattern
// suspends the pipeline, others just steer the round.
func DetectPatterns(s *Session) []Pattern {
	var patterns []Pattern

	expected := defaultExpectedInventory
	if profile, ok := personax.ProfileByID(s.Persona.PersonaID); ok {
		expected = profile.ExpectedInventory
	}
	if len(s.Candidates) < expected {
		patterns = append(patterns, Pattern{
			Type: PatternInsufficientInventory,
			Description: fmt.Sprintf("예산 범위 내 매물이 %d건으로 기대치 %d건에 미달합니다",
				len(s.Candidates), expected),
			NeedsUser: true,
		})
	}

	if conflict, ok := findConflict(s); ok {
		patterns = append(patterns, conflict)
	}

	return patterns
}

// findConflict scans the query and discovered needs against the fixed
// incompatibility table.
func findConflict(s *Session) (Pattern, bool) {
	haystack := strings.ToLower(s.Query)
	for _, need := range s.DiscoveredNeeds {
		haystack += " " + strings.ToLower(need)
	}

	for _, rule := range incompatibilityRules {
		if strings.Contains(haystack, rule.a) && strings.Contains(haystack, rule.b) {
			return Pattern{
				Type:        PatternConflictingRequirements,
				Description: rule.description,
			}, true
		}
	}
	return Pattern{}, false
}
