package persona

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

// defaultMatcherTimeout bounds each matcher individually. The matchers are
// local computations, so a few hundred milliseconds is generous; a slow or
// failing matcher is dropped from fusion, never awaited indefinitely.
const defaultMatcherTimeout = 300 * time.Millisecond

// Detector runs the three persona matchers concurrently over the same input
// and fuses whatever arrives in time.
type Detector struct {
	profiles []Profile
	timeout  time.Duration

	keywordFn     func(string, contractx.BudgetRange) (contractx.MatchResult, bool)
	vectorFn      func(string, []Profile) []contractx.MatchResult
	statisticalFn func(string, contractx.BudgetRange) (contractx.MatchResult, bool)
}

// DetectorOption customizes a Detector.
type DetectorOption func(*Detector)

// WithMatcherTimeout overrides the per-matcher timeout.
func WithMatcherTimeout(d time.Duration) DetectorOption {
	return func(det *Detector) {
		if d > 0 {
			det.timeout = d
		}
	}
}

// NewDetector builds a Detector over the static persona table.
func NewDetector(opts ...DetectorOption) *Detector {
	det := &Detector{
		profiles:      Profiles(),
		timeout:       defaultMatcherTimeout,
		keywordFn:     MatchKeyword,
		vectorFn:      MatchVector,
		statisticalFn: MatchStatistical,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(det)
		}
	}
	return det
}

// Detect derives the budget range from the text, fans the three matchers out
// concurrently, and fuses their votes. It always returns a usable budget and
// a FusionResult; an insufficient-signal result carries TierInsufficient.
func (d *Detector) Detect(ctx context.Context, text string) (contractx.FusionResult, contractx.BudgetRange) {
	budget := ExtractBudget(text)

	type keywordOut struct {
		res contractx.MatchResult
		ok  bool
	}
	type vectorOut struct {
		res []contractx.MatchResult
	}

	keywordCh := make(chan keywordOut, 1)
	vectorCh := make(chan vectorOut, 1)
	statCh := make(chan keywordOut, 1)

	go func() {
		res, ok := d.keywordFn(text, budget)
		keywordCh <- keywordOut{res: res, ok: ok}
	}()
	go func() {
		vectorCh <- vectorOut{res: d.vectorFn(text, d.profiles)}
	}()
	go func() {
		res, ok := d.statisticalFn(text, budget)
		statCh <- keywordOut{res: res, ok: ok}
	}()

	deadline := time.NewTimer(d.timeout)
	defer deadline.Stop()

	var in FusionInput
	pending := 3
	for pending > 0 {
		select {
		case out := <-keywordCh:
			keywordCh = nil
			pending--
			if out.ok {
				res := out.res
				in.Keyword = &res
			}
		case out := <-vectorCh:
			vectorCh = nil
			pending--
			in.Vector = out.res
		case out := <-statCh:
			statCh = nil
			pending--
			if out.ok {
				res := out.res
				in.Statistical = &res
			}
		case <-deadline.C:
			log.Warn().
				Int("pending_matchers", pending).
				Dur("timeout", d.timeout).
				Msg("persona matcher timed out; dropping its vote")
			pending = 0
		case <-ctx.Done():
			log.Debug().Err(ctx.Err()).Msg("persona detection cancelled; fusing partial votes")
			pending = 0
		}
	}

	result := Fuse(in)
	log.Debug().
		Str("persona", string(result.PersonaID)).
		Float64("confidence", result.OverallConfidence).
		Str("tier", string(result.Tier)).
		Bool("convergence", result.ConvergenceEvidence).
		Msg("persona fusion complete")
	return result, budget
}
