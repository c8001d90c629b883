package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
	optionsx "github.com/carpickhq/carpick-agent/agent/options"
	personax "github.com/carpickhq/carpick-agent/agent/persona"
	promptx "github.com/carpickhq/carpick-agent/agent/prompt"
)

var (
	// ErrSessionNotFound is returned by SessionCache implementations when no
	// mirrored session exists for an id.
	ErrSessionNotFound = errors.New("collaboration session not found")

	ErrEmptyRequest = errors.New("request text is empty")
	ErrNotSuspended = errors.New("session is not awaiting user input")
	errStreamClosed = errors.New("event stream consumer is gone")
)

// SessionCache mirrors sessions into an external store with a TTL. It is an
// optimization only: the orchestrator never depends on cache presence for
// correctness, and a cold start must work.
type SessionCache interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, sessionID string) error
}

// Notifier receives the terminal event of each session, e.g. a webhook
// publisher. Failures are logged and never fatal.
type Notifier interface {
	Publish(ctx context.Context, payload any) error
}

// Config drives orchestrator timing and bounds.
type Config struct {
	MaxRounds    int           `split_words:"true" default:"3"`
	StageTimeout time.Duration `split_words:"true" default:"30s"`
	StageRetries int           `split_words:"true" default:"2"`
	StreamBuffer int           `split_words:"true" default:"32"`
	SearchLimit  int           `split_words:"true" default:"100"`
}

func (c *Config) applyDefaults() {
	if c.MaxRounds <= 0 {
		c.MaxRounds = 3
	}
	if c.StageTimeout <= 0 {
		c.StageTimeout = 30 * time.Second
	}
	if c.StageRetries < 0 {
		c.StageRetries = 2
	}
	if c.StreamBuffer <= 0 {
		c.StreamBuffer = 32
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 100
	}
}

// Orchestrator owns the collaboration state machine. It is the sole producer
// of each session's event stream and the only writer of session state.
type Orchestrator struct {
	inventory contractx.InventorySearcher
	models    contractx.GeneratorRegistry
	detector  *personax.Detector
	catalog   []optionsx.CatalogEntry
	prompts   promptx.PromptSet
	cache     SessionCache
	notifier  Notifier

	cfg Config
	now func() time.Time

	roundRunner compose.Runnable[*roundState, *roundState]
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithSessionCache attaches an external session mirror.
func WithSessionCache(cache SessionCache) Option {
	return func(o *Orchestrator) { o.cache = cache }
}

// WithNotifier attaches a terminal-event publisher.
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New builds an Orchestrator over the external collaborators.
func New(
	inventory contractx.InventorySearcher,
	models contractx.GeneratorRegistry,
	detector *personax.Detector,
	cfg Config,
	opts ...Option,
) (*Orchestrator, error) {
	if inventory == nil {
		return nil, errors.New("inventory searcher is required")
	}
	if models == nil {
		return nil, errors.New("generator registry is required")
	}
	if detector == nil {
		detector = personax.NewDetector()
	}
	cfg.applyDefaults()

	o := &Orchestrator{
		inventory: inventory,
		models:    models,
		detector:  detector,
		catalog:   optionsx.Catalog(),
		prompts:   promptx.LoadPromptSet(),
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	runner, err := o.compileRoundGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.roundRunner = runner
	return o, nil
}

// Request is one conversational turn.
type Request struct {
	UserID string
	Text   string
}

// Collaborate infers the persona, opens a session, and streams collaboration
// events. The returned channel is closed after exactly one terminal event
// (collaboration_complete or error) - or, when the session suspends for a
// user decision, after user_intervention_needed with no terminal event.
func (o *Orchestrator) Collaborate(ctx context.Context, req Request) (<-chan Event, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, ErrEmptyRequest)
	}

	persona, budget := o.detector.Detect(ctx, text)
	sess := NewSession(strings.TrimSpace(req.UserID), text, persona, budget, o.cfg.MaxRounds, o.now())

	ch := make(chan Event, o.cfg.StreamBuffer)
	go o.run(ctx, sess, ch, true)
	return ch, nil
}

// Resume continues a session previously suspended in AWAITING_USER. The user
// reply is folded into the session query before the next round.
func (o *Orchestrator) Resume(ctx context.Context, sess *Session, userReply string) (<-chan Event, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: session is nil", contractx.ErrValidation)
	}
	if sess.Status != StatusAwaitingUser {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, ErrNotSuspended)
	}
	if reply := strings.TrimSpace(userReply); reply != "" {
		sess.Query = sess.Query + " " + reply
		sess.SatisfactionSignals = append(sess.SatisfactionSignals, reply)
	}

	ch := make(chan Event, o.cfg.StreamBuffer)
	go o.run(ctx, sess, ch, true)
	return ch, nil
}

// LoadSession fetches a mirrored session from the cache, when configured.
func (o *Orchestrator) LoadSession(ctx context.Context, sessionID string) (*Session, error) {
	if o.cache == nil {
		return nil, ErrSessionNotFound
	}
	return o.cache.Load(ctx, sessionID)
}

// run is the producer goroutine: it owns the session, drives rounds, and is
// the only writer of the event channel. It always closes the channel.
func (o *Orchestrator) run(ctx context.Context, sess *Session, ch chan Event, refreshInventory bool) {
	defer close(ch)
	st := &stream{ctx: ctx, ch: ch, now: o.now}

	if refreshInventory {
		o.searchInventory(ctx, sess)
	}

	for sess.Round < sess.MaxRounds {
		sess.AdvanceRound(o.now())
		patterns := DetectPatterns(sess)

		suspended := false
		for _, p := range patterns {
			if !st.emit(Event{
				Type:     EventPatternDetected,
				Agent:    contractx.AgentSystem,
				Content:  p.Description,
				Round:    sess.Round,
				Metadata: PatternMeta{Pattern: p},
			}) {
				o.absorbCancellation(ctx, sess, st)
				return
			}
			if p.NeedsUser && !suspended {
				suspended = true
				st.emit(Event{
					Type:     EventUserIntervention,
					Agent:    contractx.AgentSystem,
					Content:  p.Description,
					Round:    sess.Round,
					Metadata: PatternMeta{Pattern: p},
				})
			}
		}
		if suspended {
			sess.Status = StatusAwaitingUser
			o.mirrorSession(sess)
			log.Info().Str("session_id", sess.ID).Int("round", sess.Round).
				Msg("collaboration suspended for user decision")
			return
		}

		sess.Status = StatusRoundInProgress
		rs := &roundState{sess: sess, stream: st, patterns: patterns}
		if _, err := o.roundRunner.Invoke(ctx, rs); err != nil {
			if isCancellation(ctx, err) {
				o.absorbCancellation(ctx, sess, st)
				return
			}
			o.fail(ctx, sess, st, err)
			return
		}

		if len(sess.Ranked) > 0 && !hasConflict(patterns) {
			break
		}
	}

	o.complete(ctx, sess, st)
}

func (o *Orchestrator) complete(ctx context.Context, sess *Session, st *stream) {
	sess.Status = StatusComplete

	st.emit(Event{
		Type:     EventVehicleRecommendations,
		Agent:    contractx.AgentDataAnalyst,
		Content:  fmt.Sprintf("%d건의 추천 목록이 준비되었습니다", len(sess.Ranked)),
		Round:    sess.Round,
		Metadata: RecommendationsMeta{Vehicles: sess.Ranked},
	})

	terminal := Event{
		Type:     EventComplete,
		Agent:    contractx.AgentSystem,
		Content:  "협업이 완료되었습니다",
		Round:    sess.Round,
		Metadata: CompleteMeta{TotalRounds: sess.Round},
	}
	st.emit(terminal)
	o.teardown(sess, terminal)
}

// fail surfaces an unrecoverable upstream failure as the stream's single
// terminal error event.
func (o *Orchestrator) fail(ctx context.Context, sess *Session, st *stream, cause error) {
	sess.Status = StatusFailed
	log.Error().Err(cause).Str("session_id", sess.ID).Int("round", sess.Round).
		Msg("collaboration failed")

	terminal := Event{
		Type:     EventError,
		Agent:    contractx.AgentSystem,
		Content:  "협업 처리 중 오류가 발생했습니다",
		Round:    sess.Round,
		Metadata: ErrorMeta{Reason: cause.Error()},
	}
	st.emit(terminal)
	o.teardown(sess, terminal)
}

// absorbCancellation handles consumer disconnect: stop issuing stage calls,
// still attempt a terminal event, release resources. Never propagates.
func (o *Orchestrator) absorbCancellation(ctx context.Context, sess *Session, st *stream) {
	sess.Status = StatusFailed
	log.Debug().Str("session_id", sess.ID).Err(ctx.Err()).
		Msg("stream consumer gone; collaboration cancelled")

	terminal := Event{
		Type:     EventError,
		Agent:    contractx.AgentSystem,
		Content:  "요청이 취소되었습니다",
		Round:    sess.Round,
		Metadata: ErrorMeta{Reason: "cancelled"},
	}
	st.tryEmit(terminal)
	o.teardown(sess, terminal)
}

// teardown mirrors the final session state and publishes the terminal event.
// Both are best-effort side channels detached from the request context.
func (o *Orchestrator) teardown(sess *Session, terminal Event) {
	o.mirrorSession(sess)
	if o.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := o.notifier.Publish(ctx, terminal); err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("terminal event publish failed")
	}
}

func (o *Orchestrator) mirrorSession(sess *Session) {
	if o.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := o.cache.Save(ctx, sess); err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("session mirror failed")
	}
}

// searchInventory loads the working candidate set. A search failure is a
// degradation, not a hard failure: the round proceeds with an empty set and
// the pattern detector takes it from there.
func (o *Orchestrator) searchInventory(ctx context.Context, sess *Session) {
	q := contractx.SearchQuery{
		Budget:    sess.Budget,
		QueryText: sess.Query,
		Limit:     o.cfg.SearchLimit,
	}
	if sess.Persona.Personalized() {
		q.Persona = sess.Persona.PersonaID
	}

	candidates, err := o.inventory.Search(ctx, q)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("inventory search degraded; proceeding with empty set")
		candidates = nil
	}
	sess.Candidates = candidates
}

func hasConflict(patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Type == PatternConflictingRequirements {
			return true
		}
	}
	return false
}

func isCancellation(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, errStreamClosed)
}

// stream is the single-producer event pipe. Sequence numbers are assigned at
// emission, so (round, sequence) is strictly increasing per session.
type stream struct {
	ctx context.Context
	ch  chan<- Event
	now func() time.Time
	seq int
}

// emit blocks until the consumer takes the event or disconnects. A false
// return means the consumer is gone.
func (s *stream) emit(ev Event) bool {
	s.seq++
	ev.Sequence = s.seq
	ev.Timestamp = s.now().UTC()
	select {
	case s.ch <- ev:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// tryEmit is the best-effort variant used for terminal events on the
// cancellation path: never blocks.
func (s *stream) tryEmit(ev Event) {
	s.seq++
	ev.Sequence = s.seq
	ev.Timestamp = s.now().UTC()
	select {
	case s.ch <- ev:
	default:
	}
}
