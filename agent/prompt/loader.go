package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/coordinator.txt
	coordinatorRaw string

	//go:embed template/needs_analyst.txt
	needsAnalystRaw string

	//go:embed template/data_analyst.txt
	dataAnalystRaw string
)

// PromptSet holds the loaded stage prompt content.
type PromptSet struct {
	Coordinator  string
	NeedsAnalyst string
	DataAnalyst  string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings. Safe to call
// concurrently; the embed is compile-time and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Coordinator:  strings.TrimSpace(coordinatorRaw),
		NeedsAnalyst: strings.TrimSpace(needsAnalystRaw),
		DataAnalyst:  strings.TrimSpace(dataAnalystRaw),
	}
}
