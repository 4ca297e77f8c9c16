package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return execute(&app{}, newRootCmd)
}

// execute runs the command tree built for a and closes a afterwards, including
// when the command fails and cobra skips its post-run hooks.
func execute(a *app, build func(*app) *cobra.Command) error {
	defer a.close()
	return build(a).Execute()
}

func newRootCmd(app *app) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "coach",
		Short: "Life coach reflections (coach): advice on your journal from five coaching personas",
		Long: "coach keeps today's journal and reflection, stores the Gemini API key, and asks five coaching " +
			"personas for advice in parallel. Each persona succeeds, fails or retries on its own.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd.ErrOrStderr(), configFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.life-coach/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newKeyCmd(app),
		newPersonasCmd(app),
		newJournalCmd(app),
		newAdviseCmd(app),
	)

	return rootCmd
}
