// Package collab drives the fixed three-agent collaboration pipeline and
// streams its progress as ordered events.
package collab

import (
	"encoding/json"
	"time"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// EventType enumerates the stream event kinds.
type EventType string

const (
	EventPatternDetected        EventType = "pattern_detected"
	EventAgentQuestion          EventType = "agent_question"
	EventAgentAnswer            EventType = "agent_answer"
	EventAgentResponse          EventType = "agent_response"
	EventVehicleRecommendations EventType = "vehicle_recommendations"
	EventUserIntervention       EventType = "user_intervention_needed"
	EventComplete               EventType = "collaboration_complete"
	EventError                  EventType = "error"
)

// Metadata is the tagged payload union: one concrete shape per event type,
// so consumers can switch exhaustively instead of probing a dictionary.
type Metadata interface {
	isEventMetadata()
}

// QuestionMeta accompanies agent_question events.
type QuestionMeta struct {
	TargetAgent string `json:"target_agent"`
}

// PatternMeta accompanies pattern_detected and user_intervention_needed.
type PatternMeta struct {
	Pattern Pattern `json:"pattern"`
}

// RecommendationsMeta accompanies vehicle_recommendations.
type RecommendationsMeta struct {
	Vehicles []contractx.ScoredVehicle `json:"vehicles"`
}

// CompleteMeta accompanies collaboration_complete.
type CompleteMeta struct {
	TotalRounds int `json:"total_rounds"`
}

// ErrorMeta accompanies terminal error events.
type ErrorMeta struct {
	Reason string `json:"reason"`
}

func (QuestionMeta) isEventMetadata()        {}
func (PatternMeta) isEventMetadata()         {}
func (RecommendationsMeta) isEventMetadata() {}
func (CompleteMeta) isEventMetadata()        {}
func (ErrorMeta) isEventMetadata()           {}

// Event is one append-only entry of a session's stream. It belongs to exactly
// one session and round and is never mutated after emission. (Round, Sequence)
// is strictly increasing within a stream.
type Event struct {
	Type      EventType `json:"type"`
	Agent     string    `json:"agent"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Round     int       `json:"round"`
	Sequence  int       `json:"sequence"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

// Terminal reports whether the event closes its stream.
func (e Event) Terminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}

// MarshalJSON flattens the metadata union into the wire shape
// {type, agent, content, timestamp, round, metadata}.
func (e Event) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type      EventType `json:"type"`
		Agent     string    `json:"agent"`
		Content   string    `json:"content"`
		Timestamp time.Time `json:"timestamp"`
		Round     int       `json:"round"`
		Sequence  int       `json:"sequence"`
		Metadata  Metadata  `json:"metadata,omitempty"`
	}
	return json.Marshal(wire(e))
}
