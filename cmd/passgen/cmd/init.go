package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty password store",
	Long: `Create an empty password store if none exists.

An existing store is never modified.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.repo.Init(cmd.Context()); err != nil {
		return fmt.Errorf("failed to initialise store: %w", err)
	}

	Success(cmd.OutOrStdout(), "Password store ready")
	return nil
}
