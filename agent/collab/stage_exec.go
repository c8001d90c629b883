package collab

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// runCoordinatorStage frames the round's intent from the raw request,
// persona, budget, and any detected patterns.
func (o *Orchestrator) runCoordinatorStage(ctx context.Context, rs *roundState) (*roundState, error) {
	sess := rs.sess
	payload := stagePayload{
		Round:    sess.Round,
		Query:    sess.Query,
		Tier:     sess.Persona.Tier,
		Budget:   sess.Budget,
		Patterns: rs.patterns,
		Needs:    sess.DiscoveredNeeds,
	}
	payload.applyPersona(sess.Persona)

	out, work, err := o.generate(ctx, o.models.Coordinator(), buildStagePrompt(o.prompts.Coordinator, payload))
	if err != nil {
		return nil, err
	}

	sess.Apply(StageDelta{Agent: contractx.AgentCoordinator, Output: out, Work: work}, o.now())
	rs.coordinatorOut = out

	if !rs.stream.emit(Event{
		Type:    EventAgentResponse,
		Agent:   contractx.AgentCoordinator,
		Content: out,
		Round:   sess.Round,
	}) {
		return nil, errStreamClosed
	}
	return rs, nil
}

// runNeedsAnalystStage elaborates hidden requirements from the coordinator's
// framing and may raise a cross-agent question for the data analyst.
func (o *Orchestrator) runNeedsAnalystStage(ctx context.Context, rs *roundState) (*roundState, error) {
	sess := rs.sess
	payload := stagePayload{
		Round:       sess.Round,
		Query:       sess.Query,
		Tier:        sess.Persona.Tier,
		Budget:      sess.Budget,
		PriorOutput: rs.coordinatorOut,
		Needs:       sess.DiscoveredNeeds,
	}
	payload.applyPersona(sess.Persona)

	out, work, err := o.generate(ctx, o.models.NeedsAnalyst(), buildStagePrompt(o.prompts.NeedsAnalyst, payload))
	if err != nil {
		return nil, err
	}

	needs, question := parseNeedsOutput(out)
	sess.Apply(StageDelta{
		Agent:    contractx.AgentNeedsAnalyst,
		Output:   out,
		Needs:    needs,
		Question: question,
		Work:     work,
	}, o.now())
	rs.needsAnalystOut = out

	if !rs.stream.emit(Event{
		Type:    EventAgentResponse,
		Agent:   contractx.AgentNeedsAnalyst,
		Content: out,
		Round:   sess.Round,
	}) {
		return nil, errStreamClosed
	}
	if question != "" {
		if !rs.stream.emit(Event{
			Type:     EventAgentQuestion,
			Agent:    contractx.AgentNeedsAnalyst,
			Content:  question,
			Round:    sess.Round,
			Metadata: QuestionMeta{TargetAgent: contractx.AgentDataAnalyst},
		}) {
			return nil, errStreamClosed
		}
	}
	return rs, nil
}

// runDataAnalystStage ranks the working candidate set locally, then asks the
// model to comment on the top entries (answering any pending cross-agent
// question first).
func (o *Orchestrator) runDataAnalystStage(ctx context.Context, rs *roundState) (*roundState, error) {
	sess := rs.sess

	persona := sess.Persona.PersonaID
	ranked := rankCandidates(sess.Candidates, persona, sess.Budget, o.catalog)

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	payload := stagePayload{
		Round:       sess.Round,
		Query:       sess.Query,
		Tier:        sess.Persona.Tier,
		Budget:      sess.Budget,
		PriorOutput: rs.needsAnalystOut,
		Needs:       sess.DiscoveredNeeds,
		Question:    sess.PendingQuestion,
		TopRanked:   top,
	}
	payload.applyPersona(sess.Persona)

	out, work, err := o.generate(ctx, o.models.DataAnalyst(), buildStagePrompt(o.prompts.DataAnalyst, payload))
	if err != nil {
		return nil, err
	}

	pendingQuestion := sess.PendingQuestion
	sess.Apply(StageDelta{
		Agent:  contractx.AgentDataAnalyst,
		Output: out,
		Ranked: ranked,
		Work:   work,
	}, o.now())

	if pendingQuestion != "" {
		if !rs.stream.emit(Event{
			Type:     EventAgentAnswer,
			Agent:    contractx.AgentDataAnalyst,
			Content:  out,
			Round:    sess.Round,
			Metadata: QuestionMeta{TargetAgent: contractx.AgentNeedsAnalyst},
		}) {
			return nil, errStreamClosed
		}
		return rs, nil
	}

	if !rs.stream.emit(Event{
		Type:    EventAgentResponse,
		Agent:   contractx.AgentDataAnalyst,
		Content: out,
		Round:   sess.Round,
	}) {
		return nil, errStreamClosed
	}
	return rs, nil
}

// generate calls the text-generation collaborator with a per-call timeout and
// a bounded retry budget. Exhaustion wraps ErrGenerate; the caller turns that
// into the stream's terminal error. In-flight calls are not assumed to be
// mid-flight-cancellable, but they are never awaited past the timeout.
func (o *Orchestrator) generate(ctx context.Context, gen contractx.Generator, prompt string) (string, time.Duration, error) {
	start := o.now()
	var lastErr error

	for attempt := 0; attempt <= o.cfg.StageRetries; attempt++ {
		if ctx.Err() != nil {
			return "", o.now().Sub(start), ctx.Err()
		}

		callCtx, cancel := context.WithTimeout(ctx, o.cfg.StageTimeout)
		out, err := gen.Generate(callCtx, prompt)
		cancel()
		if err == nil {
			out = strings.TrimSpace(out)
			if out != "" {
				return out, o.now().Sub(start), nil
			}
			err = fmt.Errorf("%w: empty generation output", contractx.ErrGenerate)
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt+1).Int("budget", o.cfg.StageRetries+1).
			Msg("generation call failed")
	}

	return "", o.now().Sub(start), fmt.Errorf("%w: retry budget exhausted: %v", contractx.ErrGenerate, lastErr)
}
