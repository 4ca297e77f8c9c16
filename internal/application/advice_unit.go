package application

import (
	"context"
	"sync"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"go.uber.org/zap"
)

// UnitDeps are the collaborators an AdviceUnit issues requests with. Inflight is
// shared with the owning Orchestrator so Close can wait for every request.
type UnitDeps struct {
	Client   ports.CompletionClient
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *zap.Logger
	Inflight *sync.WaitGroup
}

// AdviceUnit drives one persona through AwaitingCredential, Loading, Succeeded
// and Failed. Every issued request carries a sequence number; a response whose
// sequence is no longer the latest is dropped.
type AdviceUnit struct {
	persona  domain.Persona
	client   ports.CompletionClient
	notifier ports.Notifier
	clock    ports.Clock
	logger   *zap.Logger
	baseCtx  context.Context
	inflight *sync.WaitGroup

	mu         sync.Mutex
	generation domain.Generation
	seq        uint64
	state      domain.AdviceState
	changed    chan struct{}
	closed     bool
}

func NewAdviceUnit(ctx context.Context, persona domain.Persona, deps UnitDeps) *AdviceUnit {
	if deps.Notifier == nil {
		deps.Notifier = noopNotifier{}
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Inflight == nil {
		deps.Inflight = &sync.WaitGroup{}
	}

	u := &AdviceUnit{
		persona:  persona,
		client:   deps.Client,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		logger:   deps.Logger.With(zap.String("persona", string(persona.ID))),
		baseCtx:  ctx,
		inflight: deps.Inflight,
		changed:  make(chan struct{}),
	}
	u.state = domain.AdviceState{
		PersonaID: persona.ID,
		Phase:     domain.PhaseAwaitingCredential,
		UpdatedAt: u.clock.Now(),
	}

	return u
}

func (u *AdviceUnit) Persona() domain.Persona {
	return u.persona
}

// Bind starts a new generation. Any request still in flight for an older
// generation is superseded and its response will be discarded.
func (u *AdviceUnit) Bind(generation domain.Generation) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return
	}
	u.generation = generation
	u.startLocked()
}

// Retry re-issues the current generation's request. It only acts on a failed
// unit and reports whether a request was issued.
func (u *AdviceUnit) Retry() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed || u.state.Phase != domain.PhaseFailed {
		return false
	}

	u.logger.Info("retrying advice request", zap.String("generation", string(u.generation.ID)))
	u.startLocked()
	return true
}

func (u *AdviceUnit) State() domain.AdviceState {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.state
}

// Changed returns a channel that is closed on the next state transition.
func (u *AdviceUnit) Changed() <-chan struct{} {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.changed
}

// Wait blocks until the unit is no longer loading.
func (u *AdviceUnit) Wait(ctx context.Context) (domain.AdviceState, error) {
	for {
		u.mu.Lock()
		state := u.state
		changed := u.changed
		u.mu.Unlock()

		if state.Phase != domain.PhaseLoading {
			return state, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

func (u *AdviceUnit) close() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.closed = true
}

func (u *AdviceUnit) startLocked() {
	u.seq++
	seq := u.seq
	generation := u.generation

	if !generation.Credential.Present() {
		u.setStateLocked(domain.AdviceState{
			Phase:      domain.PhaseAwaitingCredential,
			Generation: generation.ID,
		})
		return
	}

	hint := domain.MaskCredential(string(generation.Credential))
	u.setStateLocked(domain.AdviceState{
		Phase:          domain.PhaseLoading,
		Generation:     generation.ID,
		CredentialHint: hint,
	})

	prompt := domain.BuildPrompt(u.persona, generation.Snapshot)
	u.inflight.Add(1)
	go u.run(seq, generation, hint, prompt)
}

func (u *AdviceUnit) run(seq uint64, generation domain.Generation, hint, prompt string) {
	defer u.inflight.Done()

	text, err := u.client.Complete(u.baseCtx, prompt, generation.Credential)

	u.mu.Lock()
	if u.baseCtx.Err() != nil {
		u.mu.Unlock()
		return
	}
	if seq != u.seq {
		u.mu.Unlock()
		u.logger.Debug("discarding superseded response",
			zap.String("generation", string(generation.ID)),
			zap.Uint64("seq", seq))
		return
	}

	if err == nil {
		u.setStateLocked(domain.AdviceState{
			Phase:          domain.PhaseSucceeded,
			Text:           text,
			Generation:     generation.ID,
			CredentialHint: hint,
		})
		u.mu.Unlock()
		u.logger.Debug("advice received", zap.String("generation", string(generation.ID)), zap.Int("chars", len(text)))
		return
	}

	kind, status := domain.ClassifyError(err)
	u.setStateLocked(domain.AdviceState{
		Phase:          domain.PhaseFailed,
		ErrorKind:      kind,
		StatusCode:     status,
		Generation:     generation.ID,
		CredentialHint: hint,
	})
	notice := domain.FailureNotice{
		PersonaID:   u.persona.ID,
		DisplayName: u.persona.DisplayName,
		Generation:  generation.ID,
		Kind:        kind,
		StatusCode:  status,
		At:          u.state.UpdatedAt,
	}
	u.mu.Unlock()

	u.logger.Warn("advice request failed",
		zap.String("generation", string(generation.ID)),
		zap.String("kind", string(kind)),
		zap.Int("status", status),
		zap.Error(err))

	if notifyErr := u.notifier.NotifyFailure(u.baseCtx, notice); notifyErr != nil {
		u.logger.Warn("failure notification not delivered", zap.Error(notifyErr))
	}
}

func (u *AdviceUnit) setStateLocked(state domain.AdviceState) {
	state.PersonaID = u.persona.ID
	state.UpdatedAt = u.clock.Now()
	u.state = state

	close(u.changed)
	u.changed = make(chan struct{})
}

type noopNotifier struct{}

func (noopNotifier) NotifyFailure(context.Context, domain.FailureNotice) error {
	return nil
}
