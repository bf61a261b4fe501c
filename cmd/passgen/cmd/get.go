package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/service"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored password",
	Long: `Print the password stored under a name.

The password is printed to stdout without a trailing newline, so the
command is pipe-friendly.

Examples:
  passgen get github
  PW=$(passgen get github)`,
	Aliases: []string{"show"},
	Args:    cobra.ExactArgs(1),
	RunE:    runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	name := args[0]
	password, ok, err := a.entries.Get(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to get password: %w", storeHint(err))
	}
	if !ok {
		return fmt.Errorf("%w: %q", service.ErrEntryNotFound, name)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), model.EntryResponse{Name: name, Password: password})
	}

	fmt.Fprint(cmd.OutOrStdout(), password)
	return nil
}
