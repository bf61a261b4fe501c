package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored password names",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	names, err := a.entries.ListNames(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list passwords: %w", storeHint(err))
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, model.NamesResponse{Names: names})
	}

	if len(names) == 0 {
		Warning(cmd.ErrOrStderr(), "No passwords stored")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
