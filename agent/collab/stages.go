package collab

import (
	"encoding/json"
	"sort"
	"strings"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
	optionsx "github.com/carpickhq/carpick-agent/agent/options"
	personax "github.com/carpickhq/carpick-agent/agent/persona"
)

// Rank weights for the candidate ordering produced by the data analyst
// stage. Fixed, hand-tuned.
const (
	rankOptionWeight = 0.5
	rankBudgetWeight = 0.3
	rankBrandWeight  = 0.2

	maxRecommendations = 10
)

// questionPrefix marks a cross-agent question line in the needs analyst's
// output.
const questionPrefix = "질문:"

// stagePayload is the JSON handed to every stage prompt. Each stage is built
// from the prior stage's textual output, which is why the three stages are
// strictly sequential within a round.
type stagePayload struct {
	Round       int                       `json:"round"`
	Query       string                    `json:"query"`
	Persona     contractx.PersonaID       `json:"persona,omitempty"`
	Tier        contractx.ConfidenceTier  `json:"tier"`
	Budget      contractx.BudgetRange     `json:"budget"`
	Priorities  []string                  `json:"priorities,omitempty"`
	AgentOrder  []string                  `json:"agent_order,omitempty"`
	Patterns    []Pattern                 `json:"patterns,omitempty"`
	PriorOutput string                    `json:"prior_output,omitempty"`
	Needs       []string                  `json:"needs,omitempty"`
	Question    string                    `json:"question,omitempty"`
	TopRanked   []contractx.ScoredVehicle `json:"top_ranked,omitempty"`
}

// applyPersona fills the persona-derived payload fields: the archetype's
// stated priorities steer every stage's framing, and the expected
// collaboration order is surfaced to the coordinator's plan.
func (p *stagePayload) applyPersona(f contractx.FusionResult) {
	if !f.Personalized() {
		return
	}
	p.Persona = f.PersonaID
	if profile, ok := personax.ProfileByID(f.PersonaID); ok {
		p.Priorities = profile.Priorities
		p.AgentOrder = profile.AgentOrder
	}
}

func (p stagePayload) encode() string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// buildStagePrompt joins a stage template with its payload. Templates carry a
// single {input} placeholder and no other templating.
func buildStagePrompt(template string, payload stagePayload) string {
	return strings.Replace(template, "{input}", payload.encode(), 1)
}

// parseNeedsOutput splits the needs analyst's output into bullet needs and an
// optional cross-agent question.
func parseNeedsOutput(out string) (needs []string, question string) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "- "):
			if need := strings.TrimSpace(strings.TrimPrefix(line, "- ")); need != "" {
				needs = append(needs, need)
			}
		case strings.HasPrefix(line, questionPrefix):
			question = strings.TrimSpace(strings.TrimPrefix(line, questionPrefix))
		}
	}
	return needs, question
}

// rankCandidates orders the working candidate set for the persona and budget
// and annotates each entry with its option-value score. Inventory ordering is
// unspecified, so ranking always starts from scratch.
func rankCandidates(
	candidates []contractx.VehicleCandidate,
	persona contractx.PersonaID,
	budget contractx.BudgetRange,
	catalog []optionsx.CatalogEntry,
) []contractx.ScoredVehicle {
	ranked := make([]contractx.ScoredVehicle, 0, len(candidates))
	for _, c := range candidates {
		optScore := optionsx.Score(catalog, persona, c.Options)
		rank := rankOptionWeight*optScore.Total +
			rankBudgetWeight*budgetFit(c.Price, budget) +
			rankBrandWeight*brandFit(c.Manufacturer, persona)
		ranked = append(ranked, contractx.ScoredVehicle{
			VehicleCandidate: c,
			OptionScore:      optScore,
			RankScore:        rank,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankScore > ranked[j].RankScore
	})
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	return ranked
}

// budgetFit is 100 inside the range and decays linearly with relative
// distance outside it.
func budgetFit(price int, budget contractx.BudgetRange) float64 {
	if price >= budget.Min && price <= budget.Max {
		return 100
	}
	var overshoot float64
	if price < budget.Min {
		overshoot = float64(budget.Min-price) / float64(budget.Min)
	} else {
		overshoot = float64(price-budget.Max) / float64(budget.Max)
	}
	fit := 100 - overshoot*200
	if fit < 0 {
		return 0
	}
	return fit
}

// brandFit maps the persona's brand-bias table onto a 0-100 bonus for the
// candidate's manufacturer.
func brandFit(manufacturer string, persona contractx.PersonaID) float64 {
	profile, ok := personax.ProfileByID(persona)
	if !ok {
		return 50
	}
	name := strings.ToLower(manufacturer)
	for brand := range profile.BrandBias {
		if strings.Contains(name, brand) || strings.Contains(brand, name) {
			return 100
		}
	}
	return 50
}
