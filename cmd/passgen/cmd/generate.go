package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen/internal/model"
)

var (
	genLength    int
	genDigits    bool
	genSymbols   bool
	genUppercase bool
	genSaveAs    string
	genCopy      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password",
	Long: `Generate a random password from lowercase letters plus any enabled classes.

The password is printed to stdout. With --save it is also stored under the
given name, and with --copy it is placed on the clipboard.

Examples:
  passgen generate
  passgen generate -l 24 --digits --symbols --uppercase
  passgen generate -l 12 --digits --save github --copy`,
	Aliases: []string{"gen"},
	Args:    cobra.NoArgs,
	RunE:    runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)
	generateCmd.Flags().StringVar(&genSaveAs, "save", "", "store the password under this name")
	generateCmd.Flags().BoolVar(&genCopy, "copy", false, "copy the password to the clipboard")
}

func addGenerateFlags(c *cobra.Command) {
	c.Flags().IntVarP(&genLength, "length", "l", 12, "password length (falls back to $DEFAULT_LENGTH when unset)")
	c.Flags().BoolVarP(&genDigits, "digits", "d", false, "include digits 0-9")
	c.Flags().BoolVarP(&genSymbols, "symbols", "s", false, "include symbols !@#$*-_")
	c.Flags().BoolVarP(&genUppercase, "uppercase", "u", false, "include uppercase letters")
}

// generateRequest turns the flags the user actually set into a request, so
// unset flags fall back to configured defaults.
func generateRequest(c *cobra.Command) model.GenerateRequest {
	var req model.GenerateRequest
	flags := c.Flags()
	if flags.Changed("length") {
		req.Length = &genLength
	}
	if flags.Changed("digits") {
		req.Digits = &genDigits
	}
	if flags.Changed("symbols") {
		req.Symbols = &genSymbols
	}
	if flags.Changed("uppercase") {
		req.Uppercase = &genUppercase
	}
	return req
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	req := generateRequest(cmd)

	var resp model.GenerateResponse
	if genSaveAs != "" {
		resp, err = a.entries.GenerateAndSave(cmd.Context(), genSaveAs, req)
		err = storeHint(err)
	} else {
		resp, err = a.generator.Generate(req)
	}
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}

	if genCopy {
		if err := newClipboard().WriteAll(resp.Password); err != nil {
			return fmt.Errorf("failed to copy password: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}

	fmt.Fprintln(out, resp.Password)
	if genSaveAs != "" {
		Success(cmd.ErrOrStderr(), "Saved as '%s'", genSaveAs)
	}
	if genCopy {
		Success(cmd.ErrOrStderr(), "Copied to clipboard")
	}
	return nil
}
