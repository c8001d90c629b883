package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// ChatGenerator adapts an eino chat model to the engine's text-generation
// contract. Prompts arrive fully rendered, so the call is a single user turn.
type ChatGenerator struct {
	model einomodel.BaseChatModel
	name  string
}

func NewChatGenerator(model einomodel.BaseChatModel, name string) *ChatGenerator {
	return &ChatGenerator{model: model, name: name}
}

func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := g.model.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", contractx.ErrModelInvoke, g.name, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: %s: nil message", contractx.ErrModelInvoke, g.name)
	}
	return strings.TrimSpace(msg.Content), nil
}

// Registry holds one generator per collaborating agent.
type Registry struct {
	coordinator  contractx.Generator
	needsAnalyst contractx.Generator
	dataAnalyst  contractx.Generator
}

var _ contractx.GeneratorRegistry = (*Registry)(nil)

// NewRegistry builds the three per-agent chat models from one shared config.
func NewRegistry(ctx context.Context, cfg Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	agents := []string{
		contractx.AgentCoordinator,
		contractx.AgentNeedsAnalyst,
		contractx.AgentDataAnalyst,
	}
	generators := make(map[string]contractx.Generator, len(agents))
	for _, agent := range agents {
		builder := cfg.OpenRouterFor(agent)
		m, err := builder.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("build %s model: %w", agent, err)
		}
		generators[agent] = NewChatGenerator(m, agent)
	}

	return &Registry{
		coordinator:  generators[contractx.AgentCoordinator],
		needsAnalyst: generators[contractx.AgentNeedsAnalyst],
		dataAnalyst:  generators[contractx.AgentDataAnalyst],
	}, nil
}

func (r *Registry) Coordinator() contractx.Generator  { return r.coordinator }
func (r *Registry) NeedsAnalyst() contractx.Generator { return r.needsAnalyst }
func (r *Registry) DataAnalyst() contractx.Generator  { return r.dataAnalyst }
