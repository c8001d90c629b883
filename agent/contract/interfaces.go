package contract

import "context"

// InventorySearcher is the inventory collaborator boundary. Implementations
// may return results in any order; callers re-rank.
type InventorySearcher interface {
	Search(ctx context.Context, q SearchQuery) ([]VehicleCandidate, error)
}

// Generator is the text-generation collaborator boundary: opaque, variable
// latency, occasionally failing. No determinism is assumed.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorRegistry hands out the per-agent generation models.
type GeneratorRegistry interface {
	Coordinator() Generator
	NeedsAnalyst() Generator
	DataAnalyst() Generator
}
