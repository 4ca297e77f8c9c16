package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type personaOutput struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Title       string `json:"title"`
	Style       string `json:"style"`
}

func newPersonasCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "personas",
		Short: "List the coaching personas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			personas := app.registry.All()

			if asJSON {
				out := make([]personaOutput, 0, len(personas))
				for _, p := range personas {
					out = append(out, personaOutput{
						ID:          string(p.ID),
						DisplayName: p.DisplayName,
						Title:       p.Title,
						Style:       p.StyleDescription,
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, p := range personas {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.DisplayName, p.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
