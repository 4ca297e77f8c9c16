package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CredentialSource publishes credential changes. CredentialStore implements it.
type CredentialSource interface {
	Subscribe(fn func(domain.Credential)) func()
}

// Orchestrator fans one journal snapshot and credential out to an AdviceUnit per
// persona. Units are independent: one failing does not touch the others.
type Orchestrator struct {
	clock  ports.Clock
	logger *zap.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	units []*AdviceUnit
	byID  map[domain.PersonaID]*AdviceUnit

	mu          sync.Mutex
	generation  domain.Generation
	bound       bool
	closed      bool
	unsubscribe func()
}

func NewOrchestrator(
	registry ports.PersonaRegistry,
	client ports.CompletionClient,
	notifier ports.Notifier,
	clock ports.Clock,
	logger *zap.Logger,
) *Orchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		clock:  clock,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		byID:   map[domain.PersonaID]*AdviceUnit{},
	}

	for _, persona := range registry.All() {
		unit := NewAdviceUnit(ctx, persona, UnitDeps{
			Client:   client,
			Notifier: notifier,
			Clock:    clock,
			Logger:   logger,
			Inflight: &o.inflight,
		})
		o.units = append(o.units, unit)
		o.byID[persona.ID] = unit
	}

	return o
}

// Bind starts a new generation for every persona and returns without waiting
// for any response.
func (o *Orchestrator) Bind(snapshot domain.JournalSnapshot, credential domain.Credential) domain.Generation {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.bindLocked(snapshot, credential)
}

// SetCredential rebinds with a new credential. It reports false when nothing
// changed or no snapshot has been bound yet.
func (o *Orchestrator) SetCredential(credential domain.Credential) (domain.Generation, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.bound || o.generation.Credential == credential {
		return o.generation, false
	}

	return o.bindLocked(o.generation.Snapshot, credential), true
}

func (o *Orchestrator) SetSnapshot(snapshot domain.JournalSnapshot) (domain.Generation, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.bound || o.generation.Snapshot == snapshot {
		return o.generation, false
	}

	return o.bindLocked(snapshot, o.generation.Credential), true
}

// AttachCredentials rebinds on every credential change published by source
// until Close.
func (o *Orchestrator) AttachCredentials(source CredentialSource) {
	unsubscribe := source.Subscribe(func(credential domain.Credential) {
		o.SetCredential(credential)
	})

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		unsubscribe()
		return
	}
	if o.unsubscribe != nil {
		o.unsubscribe()
	}
	o.unsubscribe = unsubscribe
}

func (o *Orchestrator) Generation() domain.Generation {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.generation
}

func (o *Orchestrator) Units() []*AdviceUnit {
	return append([]*AdviceUnit(nil), o.units...)
}

func (o *Orchestrator) Unit(id domain.PersonaID) (*AdviceUnit, error) {
	unit, ok := o.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPersonaNotFound, id)
	}

	return unit, nil
}

// States returns one snapshot per persona in roster order.
func (o *Orchestrator) States() []domain.AdviceState {
	states := make([]domain.AdviceState, 0, len(o.units))
	for _, unit := range o.units {
		states = append(states, unit.State())
	}

	return states
}

func (o *Orchestrator) Retry(id domain.PersonaID) (bool, error) {
	unit, err := o.Unit(id)
	if err != nil {
		return false, err
	}

	return unit.Retry(), nil
}

// RetryFailed retries every failed unit and returns how many were re-issued.
func (o *Orchestrator) RetryFailed() int {
	retried := 0
	for _, unit := range o.units {
		if unit.Retry() {
			retried++
		}
	}

	return retried
}

// Wait blocks until no unit is loading.
func (o *Orchestrator) Wait(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, unit := range o.units {
		group.Go(func() error {
			_, err := unit.Wait(groupCtx)
			return err
		})
	}

	return group.Wait()
}

// Close stops accepting binds, abandons outstanding requests and waits for
// their goroutines to exit.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	unsubscribe := o.unsubscribe
	o.unsubscribe = nil
	for _, unit := range o.units {
		unit.close()
	}
	o.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	o.cancel()
	o.inflight.Wait()
}

func (o *Orchestrator) bindLocked(snapshot domain.JournalSnapshot, credential domain.Credential) domain.Generation {
	if o.closed {
		return o.generation
	}

	generation := domain.Generation{
		ID:         domain.GenerationID(uuid.NewString()),
		Snapshot:   snapshot,
		Credential: credential,
		BoundAt:    o.clock.Now(),
	}
	o.generation = generation
	o.bound = true

	o.logger.Info("binding advice generation",
		zap.String("generation", string(generation.ID)),
		zap.Bool("credential", credential.Present()),
		zap.Int("personas", len(o.units)))

	for _, unit := range o.units {
		unit.Bind(generation)
	}

	return generation
}
