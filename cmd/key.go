package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var errCredentialRequired = errors.New("API 키가 설정되지 않았습니다. 'coach key set'으로 먼저 저장해주세요")

func newKeyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
	}

	cmd.AddCommand(
		newKeySetCmd(app),
		newKeyShowCmd(app),
		newKeyRemoveCmd(app),
	)

	return cmd
}

func newKeySetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set [api-key]",
		Short: "Store the API key (reads one line from stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 1 {
				value = args[0]
			} else {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read api key: %w", err)
				}
				value = line
			}

			if err := app.credentials.Save(cmd.Context(), value); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API 키가 저장되었습니다: %s\n", app.credentials.Mask(value))
			return nil
		},
	}
}

func newKeyShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored API key, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			credential, err := app.credentials.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if !credential.Present() {
				return errCredentialRequired
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), credential.String())
			return nil
		},
	}
}

func newKeyRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.credentials.Remove(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API 키가 삭제되었습니다.")
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
