package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

const (
	sessionDirMode  = 0o700
	sessionFileMode = 0o600
	tempFilePattern = ".session-*.toml.tmp"
)

// Store keeps the journal snapshot handed from the journaling step to the
// advice step in a single TOML file.
type Store struct {
	fs       afero.Fs
	path     string
	clock    ports.Clock
	validate *validator.Validate
	mu       sync.RWMutex
}

func NewStore(path string) (*Store, error) {
	return NewStoreWithFs(afero.NewOsFs(), path, ports.SystemClock{})
}

func NewStoreWithFs(fs afero.Fs, path string, clock ports.Clock) (*Store, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register journal validation: %w", err)
	}

	return &Store{
		fs:       fs,
		path:     filepath.Clean(path),
		clock:    clock,
		validate: validate,
	}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Save validates and persists snapshot. Text is stored NFC-normalized and an
// empty date defaults to today.
func (s *Store) Save(ctx context.Context, snapshot domain.JournalSnapshot) (domain.JournalSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.JournalSnapshot{}, err
	}

	now := s.clock.Now()
	entry := journalSchema{
		Date:       norm.NFC.String(snapshot.Date),
		Journal:    norm.NFC.String(snapshot.JournalText),
		Reflection: norm.NFC.String(snapshot.ReflectionText),
	}
	if entry.Date == "" {
		entry.Date = domain.FormatJournalDate(now)
	}
	if err := s.validateEntry(entry); err != nil {
		return domain.JournalSnapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := sessionFileSchema{SavedAt: now.UTC(), Journal: entry}
	file.applyDefaults()
	if err := s.write(file); err != nil {
		return domain.JournalSnapshot{}, err
	}

	return entry.toDomain(), nil
}

func (s *Store) Load(ctx context.Context) (domain.JournalSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.JournalSnapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.JournalSnapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.JournalSnapshot{}, fmt.Errorf("read session file: %w", err)
	}

	var file sessionFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.JournalSnapshot{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.JournalSnapshot{}, err
	}

	return file.Journal.toDomain(), nil
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (s *Store) validateEntry(entry journalSchema) error {
	err := s.validate.Struct(entry)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &domain.ValidationError{
			Field:  fieldErrs[0].Field(),
			Reason: "저널과 회고를 모두 입력해주세요",
		}
	}

	return fmt.Errorf("validate journal: %w", err)
}

func (s *Store) write(file sessionFileSchema) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := afero.TempFile(s.fs, dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = s.fs.Remove(tempPath)
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}
	if err := s.fs.Chmod(tempPath, sessionFileMode); err != nil {
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if err := s.fs.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	return nil
}

func (e journalSchema) toDomain() domain.JournalSnapshot {
	return domain.JournalSnapshot{
		Date:           e.Date,
		JournalText:    e.Journal,
		ReflectionText: e.Reflection,
	}
}
