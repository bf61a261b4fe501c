package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored password",
	Long: `Delete the password stored under a name.

By default, you will be prompted to confirm the deletion.
Use --yes or -y to skip the confirmation prompt.`,
	Aliases: []string{"rm", "remove"},
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "yes", "y", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	name := args[0]
	if !deleteForce {
		if !PromptConfirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete password %s?", Bold("%s", name))) {
			Warning(cmd.OutOrStdout(), "Canceled")
			return nil
		}
	}

	if err := a.entries.Delete(cmd.Context(), name); err != nil {
		return fmt.Errorf("failed to delete password: %w", storeHint(err))
	}

	Success(cmd.OutOrStdout(), "Password '%s' deleted", name)
	return nil
}
