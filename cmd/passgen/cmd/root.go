// Package cmd provides the CLI commands for passgen.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	storePath  string
	jsonOutput bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "passgen",
	Short: "passgen - generate and keep passwords in a local store",
	Long: `passgen generates random passwords and keeps named passwords in a
local JSON store.

Get started:
  passgen init                  Create an empty store
  passgen generate --digits     Print a new password
  passgen save NAME             Generate and store a password
  passgen copy NAME             Copy a stored password to the clipboard

Examples:
  passgen generate --length 20 --digits --symbols --uppercase
  passgen generate --length 12 --digits --save github
  passgen list
  passgen delete github`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		Error(rootCmd.ErrOrStderr(), "%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "password store file (default $STORE_PATH or ~/.passgen/passwords.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
}
