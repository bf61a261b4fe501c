package service

import (
	"errors"
	"testing"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int { return &n }

func TestGenerate_Defaults(t *testing.T) {
	svc := NewGeneratorService(crypto.DefaultOptions())
	resp, err := svc.Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 12 || len(resp.Password) != 12 {
		t.Errorf("expected length 12, got %d (%q)", resp.Length, resp.Password)
	}
	for _, c := range resp.Password {
		if c < 'a' || c > 'z' {
			t.Errorf("unexpected character %q in lowercase-only password", c)
		}
	}
	if len(resp.Classes) != 1 || resp.Classes[0] != crypto.ClassLowercase {
		t.Errorf("Classes = %v, want [lowercase]", resp.Classes)
	}
}

func TestGenerate_ConfiguredDefaults(t *testing.T) {
	svc := NewGeneratorService(crypto.GeneratorOptions{Length: 20, Uppercase: true})

	opts := svc.Options(model.GenerateRequest{Digits: boolPtr(true)})
	want := crypto.GeneratorOptions{Length: 20, Digits: true, Uppercase: true}
	if opts != want {
		t.Errorf("Options() = %+v, want %+v", opts, want)
	}

	opts = svc.Options(model.GenerateRequest{Length: intPtr(5), Uppercase: boolPtr(false)})
	want = crypto.GeneratorOptions{Length: 5}
	if opts != want {
		t.Errorf("Options() = %+v, want %+v", opts, want)
	}
}

func TestGenerate_LowercaseAndDigits(t *testing.T) {
	svc := NewGeneratorService(crypto.DefaultOptions())
	resp, err := svc.Generate(model.GenerateRequest{
		Length: intPtr(12),
		Digits: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Password) != 12 {
		t.Errorf("expected password length 12, got %d", len(resp.Password))
	}
	for _, c := range resp.Password {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			t.Errorf("unexpected character %q in password over [a-z0-9]", c)
		}
	}
}

func TestGenerate_ZeroLength(t *testing.T) {
	svc := NewGeneratorService(crypto.DefaultOptions())
	resp, err := svc.Generate(model.GenerateRequest{Length: intPtr(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Password != "" || resp.Length != 0 {
		t.Errorf("expected empty password, got %q", resp.Password)
	}
}

func TestGenerate_InvalidLength(t *testing.T) {
	svc := NewGeneratorService(crypto.DefaultOptions())

	if _, err := svc.Generate(model.GenerateRequest{Length: intPtr(-4)}); !errors.Is(err, crypto.ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := svc.Generate(model.GenerateRequest{Length: intPtr(crypto.MaxLength + 1)}); !errors.Is(err, crypto.ErrLengthTooLong) {
		t.Errorf("expected ErrLengthTooLong, got %v", err)
	}
}
