package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen/internal/model"
)

var saveCmd = &cobra.Command{
	Use:   "save <name> [password]",
	Short: "Store a password under a name",
	Long: `Store a password under a name, replacing any existing entry.

Without a password argument a new one is generated using the same flags as
'passgen generate'.

Examples:
  passgen save github 'hunter2'
  passgen save bank -l 20 --digits --symbols`,
	Aliases: []string{"set"},
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	addGenerateFlags(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	name := args[0]
	entry := model.EntryResponse{Name: name}

	if len(args) == 2 {
		entry.Password = args[1]
		err = a.entries.Save(cmd.Context(), name, entry.Password)
	} else {
		var resp model.GenerateResponse
		resp, err = a.entries.GenerateAndSave(cmd.Context(), name, generateRequest(cmd))
		entry.Password = resp.Password
	}
	if err != nil {
		return fmt.Errorf("failed to save password: %w", storeHint(err))
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), entry)
	}

	if len(args) == 1 {
		fmt.Fprintln(cmd.OutOrStdout(), entry.Password)
	}
	Success(cmd.ErrOrStderr(), "Password saved as '%s'", name)
	return nil
}
