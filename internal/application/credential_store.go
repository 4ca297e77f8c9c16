package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"go.uber.org/zap"
)

// CredentialStore owns the completion credential: the durable copy in the secret
// store and the in-memory snapshot requests are issued with.
type CredentialStore struct {
	secrets ports.SecretStore
	key     string
	logger  *zap.Logger

	mu          sync.RWMutex
	current     domain.Credential
	nextSubID   int
	subscribers map[int]func(domain.Credential)
}

func NewCredentialStore(secrets ports.SecretStore, logger *zap.Logger) *CredentialStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CredentialStore{
		secrets:     secrets,
		key:         domain.CredentialKey,
		logger:      logger,
		subscribers: map[int]func(domain.Credential){},
	}
}

// Load reads the persisted credential. A missing entry is reported as an absent
// credential, not an error.
func (s *CredentialStore) Load(ctx context.Context) (domain.Credential, error) {
	value, err := s.secrets.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load credential: %w", err)
	}

	return domain.Credential(value), nil
}

// Refresh adopts the persisted credential as the current one.
func (s *CredentialStore) Refresh(ctx context.Context) (domain.Credential, error) {
	credential, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	s.setCurrent(credential)
	return credential, nil
}

func (s *CredentialStore) Save(ctx context.Context, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ValidationError{Field: "credential", Reason: "API 키를 입력해주세요"}
	}

	if err := s.secrets.Put(ctx, s.key, value); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	s.logger.Info("credential saved", zap.String("credential", domain.MaskCredential(value)))
	s.setCurrent(domain.Credential(value))
	return nil
}

// Remove deletes the persisted credential. When the delete reports an error
// but the durable copy is gone anyway, the current credential is still cleared.
func (s *CredentialStore) Remove(ctx context.Context) error {
	if err := s.secrets.Delete(ctx, s.key); err != nil {
		if _, getErr := s.secrets.Get(ctx, s.key); errors.Is(getErr, domain.ErrSecretNotFound) {
			s.logger.Warn("credential delete reported an error after the stored copy was removed", zap.Error(err))
			s.setCurrent("")
		}
		return fmt.Errorf("delete credential: %w", err)
	}

	s.logger.Info("credential removed")
	s.setCurrent("")
	return nil
}

func (s *CredentialStore) Current() domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

func (s *CredentialStore) Mask(value string) string {
	return domain.MaskCredential(value)
}

// Subscribe registers fn for every change of the current credential. The
// returned func removes the subscription.
func (s *CredentialStore) Subscribe(fn func(domain.Credential)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *CredentialStore) setCurrent(credential domain.Credential) {
	s.mu.Lock()
	if s.current == credential {
		s.mu.Unlock()
		return
	}
	s.current = credential
	subscribers := make([]func(domain.Credential), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(credential)
	}
}
