package cmd

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/roeshane/life-coach-reflections/internal/adapters/completion/genaisdk"
	"github.com/roeshane/life-coach-reflections/internal/adapters/completion/rest"
	journaltoml "github.com/roeshane/life-coach-reflections/internal/adapters/journal/toml"
	adviceadapter "github.com/roeshane/life-coach-reflections/internal/adapters/render/advice"
	"github.com/roeshane/life-coach-reflections/internal/adapters/roster"
	chainstore "github.com/roeshane/life-coach-reflections/internal/adapters/secrets/chain"
	filestore "github.com/roeshane/life-coach-reflections/internal/adapters/secrets/file"
	passstore "github.com/roeshane/life-coach-reflections/internal/adapters/secrets/pass"
	"github.com/roeshane/life-coach-reflections/internal/application"
	"github.com/roeshane/life-coach-reflections/internal/config"
	"github.com/roeshane/life-coach-reflections/internal/logging"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"go.uber.org/zap"
)

const dotEnvFile = ".env"

type app struct {
	cfg            config.Config
	stderr         io.Writer
	logger         *zap.Logger
	credentials    *application.CredentialStore
	journal        *journaltoml.Store
	registry       *roster.Registry
	clock          ports.Clock
	adviceRenderer func(adviceadapter.Report, adviceadapter.RenderOptions) (string, error)

	closeLogger func()
}

func (a *app) wire(stderr io.Writer, configFile string) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile, DotEnv: dotEnvFile})
	if err != nil {
		return err
	}

	a.stderr = &lockedWriter{w: stderr}
	logger, closeLogger, err := logging.New(cfg.Log, a.stderr)
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	secretStore, err := newSecretStore(cfg.Secrets)
	if err != nil {
		closeLogger()
		return fmt.Errorf("wire secret store: %w", err)
	}

	journal, err := journaltoml.NewStore(cfg.Session.Path)
	if err != nil {
		closeLogger()
		return fmt.Errorf("wire journal store: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLogger = closeLogger
	a.credentials = application.NewCredentialStore(secretStore, logger.Named("credentials"))
	a.journal = journal
	a.registry = roster.MustDefault()
	a.clock = ports.SystemClock{}
	a.adviceRenderer = adviceadapter.Render

	return nil
}

func (a *app) close() {
	if a.closeLogger != nil {
		a.closeLogger()
		a.closeLogger = nil
	}
}

func (a *app) completionClient(timeout time.Duration) ports.CompletionClient {
	if timeout <= 0 {
		timeout = a.cfg.Completion.Timeout
	}
	httpClient := &http.Client{Timeout: timeout}
	logger := a.logger.Named("completion")

	if a.cfg.Completion.Backend == config.BackendGenAI {
		return genaisdk.NewClient(genaisdk.Config{
			BaseURL:    a.cfg.Completion.BaseURL,
			Model:      a.cfg.Completion.Model,
			HTTPClient: httpClient,
			Logger:     logger,
		})
	}

	return rest.NewClient(rest.Config{
		BaseURL:    a.cfg.Completion.BaseURL,
		Model:      a.cfg.Completion.Model,
		HTTPClient: httpClient,
		Logger:     logger,
	})
}

func newSecretStore(cfg config.SecretsConfig) (ports.SecretStore, error) {
	switch cfg.Backend {
	case "file":
		return filestore.NewStore(cfg.Dir), nil
	case "pass":
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.Dir)
	}
}

// lockedWriter serializes the spinner, failure toasts and log lines that share stderr.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}
