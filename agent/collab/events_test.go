package collab

import (
	"encoding/json"
	"testing"
	"time"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

func TestEventTerminal(t *testing.T) {
	t.Parallel()

	terminal := map[EventType]bool{
		EventPatternDetected:        false,
		EventAgentQuestion:          false,
		EventAgentAnswer:            false,
		EventAgentResponse:          false,
		EventVehicleRecommendations: false,
		EventUserIntervention:       false,
		EventComplete:               true,
		EventError:                  true,
	}
	for typ, want := range terminal {
		if got := (Event{Type: typ}).Terminal(); got != want {
			t.Errorf("Terminal(%s) = %v, want %v", typ, got, want)
		}
	}
}

func TestEventWireShape(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ev := Event{
		Type:      EventAgentQuestion,
		Agent:     contractx.AgentNeedsAnalyst,
		Content:   "트렁크 용량 데이터가 있나요?",
		Timestamp: ts,
		Round:     2,
		Sequence:  5,
		Metadata:  QuestionMeta{TargetAgent: contractx.AgentDataAnalyst},
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"type", "agent", "content", "timestamp", "round", "sequence", "metadata"} {
		if _, ok := wire[key]; !ok {
			t.Fatalf("wire shape missing %q: %s", key, raw)
		}
	}

	var meta struct {
		TargetAgent string `json:"target_agent"`
	}
	if err := json.Unmarshal(wire["metadata"], &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.TargetAgent != contractx.AgentDataAnalyst {
		t.Fatalf("target_agent = %q", meta.TargetAgent)
	}
}

func TestEventWireOmitsEmptyMetadata(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Event{Type: EventAgentResponse, Agent: contractx.AgentCoordinator})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := wire["metadata"]; ok {
		t.Fatalf("metadata should be omitted when absent: %s", raw)
	}
}

func TestRecommendationsMetadataCarriesScores(t *testing.T) {
	t.Parallel()

	ev := Event{
		Type:  EventVehicleRecommendations,
		Agent: contractx.AgentDataAnalyst,
		Metadata: RecommendationsMeta{Vehicles: []contractx.ScoredVehicle{{
			VehicleCandidate: contractx.VehicleCandidate{ID: "veh-001", Price: 4200},
			OptionScore:      contractx.OptionScore{Total: 82.5, Tier: "good"},
			RankScore:        88.1,
		}}},
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire struct {
		Metadata struct {
			Vehicles []struct {
				ID          string `json:"id"`
				OptionScore struct {
					Tier string `json:"tier"`
				} `json:"option_score"`
				RankScore float64 `json:"rank_score"`
			} `json:"vehicles"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(wire.Metadata.Vehicles) != 1 || wire.Metadata.Vehicles[0].ID != "veh-001" {
		t.Fatalf("vehicles = %+v", wire.Metadata.Vehicles)
	}
	if wire.Metadata.Vehicles[0].OptionScore.Tier != "good" {
		t.Fatalf("tier = %q", wire.Metadata.Vehicles[0].OptionScore.Tier)
	}
}
