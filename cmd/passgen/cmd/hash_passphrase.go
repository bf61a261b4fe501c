package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen/internal/crypto"
	"golang.org/x/term"
)

var hashPassphraseCmd = &cobra.Command{
	Use:   "hash-passphrase",
	Short: "Hash a passphrase for PASSPHRASE_HASH",
	Long: `Read a passphrase and print its Argon2id hash.

Set the printed value as PASSPHRASE_HASH to require an API token for the
entry routes of the local HTTP API. On a terminal the passphrase is read
without echo; otherwise the first line of stdin is used.`,
	Args: cobra.NoArgs,
	RunE: runHashPassphrase,
}

func init() {
	rootCmd.AddCommand(hashPassphraseCmd)
}

func runHashPassphrase(cmd *cobra.Command, _ []string) error {
	passphrase, err := readPassphrase(cmd)
	if err != nil {
		return err
	}
	if passphrase == "" {
		return errors.New("passphrase must not be empty")
	}

	hash, err := crypto.HashPassphrase(passphrase)
	if err != nil {
		return fmt.Errorf("failed to hash passphrase: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func readPassphrase(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Passphrase: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
