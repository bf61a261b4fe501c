package crypto

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	symbolChars    = "!@#$*-_"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	MaxLength = 1024
)

// Character class names, in alphabet order.
const (
	ClassLowercase = "lowercase"
	ClassDigits    = "digits"
	ClassSymbols   = "symbols"
	ClassUppercase = "uppercase"
)

var (
	ErrInvalidLength = errors.New("password length must not be negative")
	ErrLengthTooLong = errors.New("password length must be at most 1024")
)

// randReader is swapped out in tests.
var randReader io.Reader = rand.Reader

// GeneratorOptions configures the password generator.
// Lowercase letters are always part of the alphabet.
type GeneratorOptions struct {
	Length    int
	Digits    bool
	Symbols   bool
	Uppercase bool
}

// DefaultOptions returns a 12 character lowercase-only configuration.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{Length: 12}
}

// Alphabet returns the characters a password may be drawn from:
// lowercase, then digits, symbols and uppercase when enabled.
func Alphabet(opts GeneratorOptions) string {
	pool := lowercaseChars
	if opts.Digits {
		pool += digitChars
	}
	if opts.Symbols {
		pool += symbolChars
	}
	if opts.Uppercase {
		pool += uppercaseChars
	}
	return pool
}

// ClassNames lists the active character classes in alphabet order.
func ClassNames(opts GeneratorOptions) []string {
	names := []string{ClassLowercase}
	if opts.Digits {
		names = append(names, ClassDigits)
	}
	if opts.Symbols {
		names = append(names, ClassSymbols)
	}
	if opts.Uppercase {
		names = append(names, ClassUppercase)
	}
	return names
}

// Generate returns a password of exactly opts.Length characters, each drawn
// independently and uniformly from Alphabet(opts).
func Generate(opts GeneratorOptions) (string, error) {
	if opts.Length < 0 {
		return "", ErrInvalidLength
	}
	if opts.Length > MaxLength {
		return "", ErrLengthTooLong
	}

	pool := Alphabet(opts)
	result := make([]byte, opts.Length)
	for i := range result {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	return string(result), nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(randReader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
