package contract

// PersonaID identifies one of the fixed customer archetypes.
type PersonaID string

const (
	PersonaCEOExecutive      PersonaID = "ceo_executive"
	PersonaFamilyFocused     PersonaID = "family_focused"
	PersonaYoungProfessional PersonaID = "young_professional"
	PersonaEcoPractical      PersonaID = "eco_practical"
	PersonaLeisureOutdoor    PersonaID = "leisure_outdoor"
)

// BudgetRange is a derived per-request price range in 만원 (10,000 KRW) units.
// Invariant: Min <= Max and Min >= the extractor floor. Never persisted.
type BudgetRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Mid returns the midpoint used for budget segmenting.
func (b BudgetRange) Mid() int {
	return (b.Min + b.Max) / 2
}

// Fixed agent identifiers of the collaboration pipeline.
const (
	AgentCoordinator  = "coordinator"
	AgentNeedsAnalyst = "needs_analyst"
	AgentDataAnalyst  = "data_analyst"
	AgentSystem       = "system"
)

// MatchMethod tags which detector produced a MatchResult.
type MatchMethod string

const (
	MethodKeyword     MatchMethod = "keyword"
	MethodVector      MatchMethod = "vector"
	MethodStatistical MatchMethod = "statistical"
)

// MatchResult is one detector's per-request hypothesis.
type MatchResult struct {
	PersonaID    PersonaID   `json:"persona_id"`
	Score        float64     `json:"score"`      // 0-100
	Confidence   float64     `json:"confidence"` // 0-100
	Method       MatchMethod `json:"method"`
	Evidence     []string    `json:"evidence,omitempty"`
	MatchedTerms []string    `json:"matched_terms,omitempty"`
}

// ConfidenceTier is the coarse bucket derived from the fused confidence.
type ConfidenceTier string

const (
	TierHigh         ConfidenceTier = "HIGH"
	TierMedium       ConfidenceTier = "MEDIUM"
	TierLow          ConfidenceTier = "LOW"
	TierInsufficient ConfidenceTier = "INSUFFICIENT"
)

// FusionResult is the single fused persona decision for a request.
// OverallConfidence is capped below 100 (ceiling 95) so the engine never
// reports false certainty. TierInsufficient is a valid outcome, not an error:
// the caller proceeds without personalization.
type FusionResult struct {
	PersonaID           PersonaID      `json:"persona_id"`
	FinalScore          float64        `json:"final_score"`
	OverallConfidence   float64        `json:"overall_confidence"` // [0,95]
	ConvergenceEvidence bool           `json:"convergence_evidence"`
	ContributingMethods []MatchMethod  `json:"contributing_methods,omitempty"`
	Tier                ConfidenceTier `json:"tier"`
}

// Personalized reports whether the caller should apply persona-specific
// ranking and tone.
func (f FusionResult) Personalized() bool {
	return f.Tier != TierInsufficient && f.PersonaID != ""
}

// VehicleCandidate is an external, read-only inventory row. The engine only
// reads it and attaches a computed option score.
type VehicleCandidate struct {
	ID           string   `json:"id"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        int      `json:"price"` // 만원
	Mileage      int      `json:"mileage"`
	FuelType     string   `json:"fuel_type"`
	Options      []string `json:"options,omitempty"`
	Location     string   `json:"location,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
}

// OptionScore is the 0-100 fit between a candidate's option labels and a
// persona's weighted preferences.
type OptionScore struct {
	Total           float64  `json:"total"`
	Tier            string   `json:"tier"`
	Highlights      []string `json:"highlights,omitempty"`
	MissingCritical []string `json:"missing_critical,omitempty"`
}

// ScoredVehicle is a candidate annotated with its option-value score and the
// engine's final rank score.
type ScoredVehicle struct {
	VehicleCandidate
	OptionScore OptionScore `json:"option_score"`
	RankScore   float64     `json:"rank_score"`
}

// SearchQuery is the inbound contract of the inventory collaborator. Result
// ordering is unspecified; the engine re-ranks internally and must tolerate
// an empty result.
type SearchQuery struct {
	Budget    BudgetRange `json:"budget"`
	QueryText string      `json:"query_text,omitempty"`
	Persona   PersonaID   `json:"persona,omitempty"`
	Limit     int         `json:"limit,omitempty"`
}
