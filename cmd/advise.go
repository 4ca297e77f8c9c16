package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/roeshane/life-coach-reflections/internal/adapters/notify/bus"
	adviceadapter "github.com/roeshane/life-coach-reflections/internal/adapters/render/advice"
	"github.com/roeshane/life-coach-reflections/internal/application"
	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/spf13/cobra"
)

type adviseOptions struct {
	key         string
	retryFailed int
	asJSON      bool
	markdown    bool
	timeout     time.Duration
}

type adviceOutput struct {
	PersonaID   string `json:"persona_id"`
	DisplayName string `json:"display_name"`
	Phase       string `json:"phase"`
	Text        string `json:"text,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
	StatusCode  int    `json:"status_code,omitempty"`
	Generation  string `json:"generation"`
}

func newAdviseCmd(app *app) *cobra.Command {
	var opts adviseOptions

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Ask every coaching persona for advice on the saved journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdvise(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.key, "key", "", "Save this API key before asking")
	cmd.Flags().IntVar(&opts.retryFailed, "retry-failed", 0, "Retry failed personas up to N times")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Render advice text as markdown")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (default: completion.timeout)")

	return cmd
}

func runAdvise(cmd *cobra.Command, app *app, opts adviseOptions) error {
	ctx := cmd.Context()

	snapshot, err := loadSnapshot(cmd, app)
	if err != nil {
		return err
	}

	if _, err := app.credentials.Refresh(ctx); err != nil {
		return err
	}
	if opts.key != "" {
		if err := app.credentials.Save(ctx, opts.key); err != nil {
			return err
		}
	}

	notifications := bus.New(app.logger.Named("bus"))
	toastsDone, err := notifications.Subscribe(ctx, toastPrinter(app.stderr))
	if err != nil {
		return err
	}

	orchestrator := application.NewOrchestrator(
		app.registry,
		app.completionClient(opts.timeout),
		notifications,
		app.clock,
		app.logger.Named("advice"),
	)
	orchestrator.AttachCredentials(app.credentials)

	generation := orchestrator.Bind(snapshot, app.credentials.Current())
	if generation.Credential.Present() {
		err = waitForAdvice(ctx, app.stderr, orchestrator, opts.retryFailed)
	}

	orchestrator.Close()
	_ = notifications.Close()
	<-toastsDone
	if err != nil {
		return err
	}

	if writeErr := writeAdvice(cmd, app, orchestrator, generation, opts); writeErr != nil {
		return writeErr
	}
	if !generation.Credential.Present() {
		return errCredentialRequired
	}

	return nil
}

func waitForAdvice(ctx context.Context, spinnerOut io.Writer, orchestrator *application.Orchestrator, retries int) error {
	wait := func(ctx context.Context) error {
		return orchestrator.Wait(ctx)
	}

	if err := runAdviceWaitSpinner(ctx, spinnerOut, "코치들의 조언을 불러오는 중...", wait); err != nil {
		return fmt.Errorf("wait for advice: %w", err)
	}

	for attempt := 0; attempt < retries; attempt++ {
		if orchestrator.RetryFailed() == 0 {
			break
		}
		label := fmt.Sprintf("실패한 코치에게 다시 요청하는 중... (%d/%d)", attempt+1, retries)
		if err := runAdviceWaitSpinner(ctx, spinnerOut, label, wait); err != nil {
			return fmt.Errorf("wait for advice retry: %w", err)
		}
	}

	return nil
}

func writeAdvice(cmd *cobra.Command, app *app, orchestrator *application.Orchestrator, generation domain.Generation, opts adviseOptions) error {
	states := orchestrator.States()
	units := orchestrator.Units()

	if opts.asJSON {
		out := make([]adviceOutput, 0, len(states))
		for i, state := range states {
			out = append(out, adviceOutput{
				PersonaID:   string(state.PersonaID),
				DisplayName: units[i].Persona().DisplayName,
				Phase:       string(state.Phase),
				Text:        state.Text,
				ErrorKind:   string(state.ErrorKind),
				StatusCode:  state.StatusCode,
				Generation:  string(state.Generation),
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	cards := make([]adviceadapter.Card, 0, len(states))
	for i, state := range states {
		cards = append(cards, adviceadapter.Card{Persona: units[i].Persona(), State: state})
	}

	rendered, err := app.adviceRenderer(adviceadapter.Report{
		Snapshot:       generation.Snapshot,
		CredentialHint: generation.Credential.String(),
		Cards:          cards,
	}, adviceadapter.RenderOptions{Markdown: opts.markdown, MarkdownStyle: glamourstyles.AutoStyle})
	if err != nil {
		return fmt.Errorf("render advice: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// toastPrinter writes one line per failure notice.
func toastPrinter(w io.Writer) func(domain.FailureNotice) {
	return func(notice domain.FailureNotice) {
		line := fmt.Sprintf("! %s: %s", notice.DisplayName, notice.Kind.Guidance())
		if notice.StatusCode != 0 {
			line = fmt.Sprintf("%s (HTTP %d)", line, notice.StatusCode)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
