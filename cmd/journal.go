package cmd

import (
	"errors"
	"fmt"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/spf13/cobra"
)

var errNoJournal = errors.New("저장된 저널이 없습니다. 'coach journal write'로 먼저 작성해주세요")

func newJournalCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write or show today's journal and reflection",
	}

	cmd.AddCommand(
		newJournalWriteCmd(app),
		newJournalShowCmd(app),
	)

	return cmd
}

func newJournalWriteCmd(app *app) *cobra.Command {
	var date, journal, reflection string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Save the journal and reflection the coaches will read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			saved, err := app.journal.Save(cmd.Context(), domain.JournalSnapshot{
				Date:           date,
				JournalText:    journal,
				ReflectionText: reflection,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "저널이 저장되었습니다 (%s)\n", saved.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (default: today, e.g. 2026년 10월 19일)")
	cmd.Flags().StringVar(&journal, "journal", "", "Journal text")
	cmd.Flags().StringVar(&reflection, "reflection", "", "Reflection text")

	return cmd
}

func newJournalShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved journal and reflection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := loadSnapshot(cmd, app)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "날짜: %s\n\n", snapshot.Date)
			_, _ = fmt.Fprintf(out, "저널:\n%s\n\n", snapshot.JournalText)
			_, _ = fmt.Fprintf(out, "회고:\n%s\n", snapshot.ReflectionText)
			return nil
		},
	}
}

func loadSnapshot(cmd *cobra.Command, app *app) (domain.JournalSnapshot, error) {
	snapshot, err := app.journal.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return domain.JournalSnapshot{}, errNoJournal
		}
		return domain.JournalSnapshot{}, fmt.Errorf("load journal: %w", err)
	}

	return snapshot, nil
}
