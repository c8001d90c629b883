package collab

import (
	"time"

	"github.com/google/uuid"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// Status is the orchestrator state machine position.
type Status string

const (
	StatusInitiated       Status = "INITIATED"
	StatusRoundInProgress Status = "ROUND_IN_PROGRESS"
	StatusAwaitingUser    Status = "AWAITING_USER"
	StatusComplete        Status = "COMPLETE"
	StatusFailed          Status = "FAILED"
)

// AgentState tracks one agent's last activity within a session.
type AgentState struct {
	Status     string        `json:"status"`
	LastOutput string        `json:"last_output,omitempty"`
	Calls      int           `json:"calls"`
	TotalWork  time.Duration `json:"total_work"`
}

// Session is the per-request collaboration state. It is owned exclusively by
// the orchestrator goroutine: every stage contribution arrives as an
// immutable StageDelta applied through Apply, never by direct field writes
// from stage code. An external cache may mirror it, never own it.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StartTime    time.Time `json:"start_time"`
	LastActivity time.Time `json:"last_activity"`

	Status    Status `json:"status"`
	Round     int    `json:"round"` // monotonic, bounded by MaxRounds
	MaxRounds int    `json:"max_rounds"`

	Persona contractx.FusionResult `json:"persona"`
	Budget  contractx.BudgetRange  `json:"budget"`
	Query   string                 `json:"query"`

	Agents              map[string]*AgentState       `json:"agents"`
	DiscoveredNeeds     []string                     `json:"discovered_needs,omitempty"`
	Candidates          []contractx.VehicleCandidate `json:"candidates,omitempty"`
	Ranked              []contractx.ScoredVehicle    `json:"ranked,omitempty"`
	SatisfactionSignals []string                     `json:"satisfaction_signals,omitempty"`
	PendingQuestion     string                       `json:"pending_question,omitempty"`
}

// NewSession creates a fresh session for one request.
func NewSession(userID, query string, persona contractx.FusionResult, budget contractx.BudgetRange, maxRounds int, now time.Time) *Session {
	return &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		StartTime:    now.UTC(),
		LastActivity: now.UTC(),
		Status:       StatusInitiated,
		MaxRounds:    maxRounds,
		Persona:      persona,
		Budget:       budget,
		Query:        query,
		Agents: map[string]*AgentState{
			contractx.AgentCoordinator:  {Status: "idle"},
			contractx.AgentNeedsAnalyst: {Status: "idle"},
			contractx.AgentDataAnalyst:  {Status: "idle"},
		},
	}
}

// StageDelta is one stage's immutable contribution to the session. Keeping
// stage outputs as deltas funnels every mutation through a single reducer,
// which stays correct even if stages are ever parallelized.
type StageDelta struct {
	Agent        string
	Output       string
	Needs        []string
	Question     string
	Candidates   []contractx.VehicleCandidate // replaces the working set when non-nil
	Ranked       []contractx.ScoredVehicle    // replaces the ranking when non-nil
	Satisfaction []string
	Work         time.Duration
}

// Apply is the single reducer folding a StageDelta into the session.
func (s *Session) Apply(d StageDelta, now time.Time) {
	if st, ok := s.Agents[d.Agent]; ok {
		st.Status = "active"
		st.LastOutput = d.Output
		st.Calls++
		st.TotalWork += d.Work
	}

	s.DiscoveredNeeds = appendUnique(s.DiscoveredNeeds, d.Needs)
	s.SatisfactionSignals = append(s.SatisfactionSignals, d.Satisfaction...)
	if d.Candidates != nil {
		s.Candidates = d.Candidates
	}
	if d.Ranked != nil {
		s.Ranked = d.Ranked
	}
	s.PendingQuestion = d.Question
	s.LastActivity = now.UTC()
}

// AdvanceRound bumps the monotonic round counter.
func (s *Session) AdvanceRound(now time.Time) {
	s.Round++
	s.LastActivity = now.UTC()
}

func appendUnique(dst []string, add []string) []string {
	for _, v := range add {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
