package llm

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

type fakeChatModel struct {
	response *schema.Message
	err      error
	lastIn   []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.lastIn = input
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func TestChatGeneratorTrimsOutput(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{response: schema.AssistantMessage("  응답입니다  \n", nil)}
	gen := NewChatGenerator(fake, "coordinator")

	out, err := gen.Generate(context.Background(), "프롬프트")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "응답입니다" {
		t.Fatalf("Generate() = %q", out)
	}
	if len(fake.lastIn) != 1 || fake.lastIn[0].Role != schema.User {
		t.Fatalf("input messages = %+v", fake.lastIn)
	}
}

func TestChatGeneratorWrapsModelError(t *testing.T) {
	t.Parallel()

	gen := NewChatGenerator(&fakeChatModel{err: errors.New("429")}, "data_analyst")
	if _, err := gen.Generate(context.Background(), "p"); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("Generate() error = %v, want ErrModelInvoke", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "key", Model: "deepseek/deepseek-chat"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if err := (Config{Model: "m"}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing api key: err = %v", err)
	}
	if err := (Config{APIKey: "k"}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing model: err = %v", err)
	}
}

func TestOpenRouterForOverrides(t *testing.T) {
	t.Parallel()

	cfg := Config{
		APIKey:                  "key",
		Model:                   "deepseek/deepseek-chat",
		Temperature:             0.5,
		CoordinatorModel:        "openai/gpt-4o-mini",
		CoordinatorTemperature:  0.1,
		DataAnalystTemperature:  0,
		NeedsAnalystTemperature: -1,
	}

	coord := cfg.OpenRouterFor(contractx.AgentCoordinator)
	if coord.Model != "openai/gpt-4o-mini" || coord.Temperature != 0.1 {
		t.Fatalf("coordinator config = %+v", coord)
	}

	needs := cfg.OpenRouterFor(contractx.AgentNeedsAnalyst)
	if needs.Model != "deepseek/deepseek-chat" || needs.Temperature != 0.5 {
		t.Fatalf("needs analyst config = %+v", needs)
	}

	// Zero is a valid explicit temperature, only negatives fall back.
	data := cfg.OpenRouterFor(contractx.AgentDataAnalyst)
	if data.Temperature != 0 {
		t.Fatalf("data analyst temperature = %v", data.Temperature)
	}
}
