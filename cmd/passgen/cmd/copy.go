package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:     "copy <name>",
	Short:   "Copy a stored password to the clipboard",
	Aliases: []string{"cp"},
	Args:    cobra.ExactArgs(1),
	RunE:    runCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.entries.Copy(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to copy password: %w", storeHint(err))
	}

	Success(cmd.OutOrStdout(), "Password copied to clipboard!")
	return nil
}
