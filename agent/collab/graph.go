package collab

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
)

// roundState threads one round through the stage graph. The stages are
// strictly sequential: each consumes the prior stage's textual output.
type roundState struct {
	sess     *Session
	stream   *stream
	patterns []Pattern

	coordinatorOut  string
	needsAnalystOut string
}

// compileRoundGraph wires the fixed Coordinator -> Needs Analyst -> Data
// Analyst pipeline as a linear graph. One compiled runner is reused across
// sessions; all per-round data rides in roundState.
func (o *Orchestrator) compileRoundGraph(ctx context.Context) (compose.Runnable[*roundState, *roundState], error) {
	graph := compose.NewGraph[*roundState, *roundState]()

	if err := graph.AddLambdaNode("frame_intent",
		compose.InvokableLambda(func(ctx context.Context, in *roundState) (*roundState, error) {
			return o.runCoordinatorStage(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node frame_intent: %w", err)
	}

	if err := graph.AddLambdaNode("analyze_needs",
		compose.InvokableLambda(func(ctx context.Context, in *roundState) (*roundState, error) {
			return o.runNeedsAnalystStage(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node analyze_needs: %w", err)
	}

	if err := graph.AddLambdaNode("rank_candidates",
		compose.InvokableLambda(func(ctx context.Context, in *roundState) (*roundState, error) {
			return o.runDataAnalystStage(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node rank_candidates: %w", err)
	}

	edges := [][2]string{
		{compose.START, "frame_intent"},
		{"frame_intent", "analyze_needs"},
		{"analyze_needs", "rank_candidates"},
		{"rank_candidates", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("collab.round"))
	if err != nil {
		return nil, fmt.Errorf("compile round graph: %w", err)
	}
	return runner, nil
}
