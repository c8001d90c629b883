package persona

import (
	"sort"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// Fusion constants. The method weights are fixed, hand-tuned values,
// renormalized over whichever methods actually contributed. The convergence
// bonus (+15) is applied exactly once when at least two methods agree, and
// the overall confidence is capped at 95 - never 100.
const (
	convergenceBonus  = 15.0
	confidenceCeiling = 95.0

	tierHighFloor   = 85.0
	tierMediumFloor = 70.0
	tierLowFloor    = 50.0
)

var methodWeights = map[contractx.MatchMethod]float64{
	contractx.MethodKeyword:     0.3,
	contractx.MethodVector:      0.4,
	contractx.MethodStatistical: 0.3,
}

// FusionInput carries whatever the three matchers produced. Absent methods
// (nil / empty) are simply dropped. The vector matcher hands over its full
// ranking; only its top entry votes, the rest is kept as evidence.
type FusionInput struct {
	Keyword     *contractx.MatchResult
	Vector      []contractx.MatchResult
	Statistical *contractx.MatchResult
}

// Fuse combines the matcher outputs into a single FusionResult. Pure and
// idempotent: identical inputs always produce identical outputs.
func Fuse(in FusionInput) contractx.FusionResult {
	votes := contributingVotes(in)
	if len(votes) == 0 {
		return contractx.FusionResult{Tier: contractx.TierInsufficient}
	}

	totalWeight := 0.0
	for _, v := range votes {
		totalWeight += methodWeights[v.Method]
	}

	finalScore := 0.0
	meanConfidence := 0.0
	methods := make([]contractx.MatchMethod, 0, len(votes))
	for _, v := range votes {
		finalScore += v.Score * (methodWeights[v.Method] / totalWeight)
		meanConfidence += v.Confidence
		methods = append(methods, v.Method)
	}
	meanConfidence /= float64(len(votes))

	winner, agreeing := majorityVote(votes)

	convergence := agreeing >= 2
	confidence := meanConfidence
	if convergence {
		confidence += convergenceBonus
	}
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	return contractx.FusionResult{
		PersonaID:           winner,
		FinalScore:          finalScore,
		OverallConfidence:   confidence,
		ConvergenceEvidence: convergence,
		ContributingMethods: methods,
		Tier:                tierFor(confidence, convergence),
	}
}

func contributingVotes(in FusionInput) []contractx.MatchResult {
	var votes []contractx.MatchResult
	if in.Keyword != nil && in.Keyword.PersonaID != "" {
		votes = append(votes, *in.Keyword)
	}
	if len(in.Vector) > 0 && in.Vector[0].PersonaID != "" {
		votes = append(votes, in.Vector[0])
	}
	if in.Statistical != nil && in.Statistical.PersonaID != "" {
		votes = append(votes, *in.Statistical)
	}
	return votes
}

// majorityVote picks the persona named by most methods; ties are broken by
// the highest individual confidence among the tied personas' votes.
func majorityVote(votes []contractx.MatchResult) (contractx.PersonaID, int) {
	counts := make(map[contractx.PersonaID]int, len(votes))
	best := make(map[contractx.PersonaID]float64, len(votes))
	for _, v := range votes {
		counts[v.PersonaID]++
		if v.Confidence > best[v.PersonaID] {
			best[v.PersonaID] = v.Confidence
		}
	}

	ids := make([]contractx.PersonaID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	// Deterministic order keeps fusion idempotent across runs.
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		if best[ids[i]] != best[ids[j]] {
			return best[ids[i]] > best[ids[j]]
		}
		return ids[i] < ids[j]
	})

	return ids[0], counts[ids[0]]
}

func tierFor(confidence float64, convergence bool) contractx.ConfidenceTier {
	switch {
	case confidence >= tierHighFloor && convergence:
		return contractx.TierHigh
	case confidence >= tierMediumFloor:
		return contractx.TierMedium
	case confidence >= tierLowFloor:
		return contractx.TierLow
	default:
		return contractx.TierInsufficient
	}
}
