package service

import (
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	defaults crypto.GeneratorOptions
}

// NewGeneratorService creates a GeneratorService that fills unset request
// fields from defaults.
func NewGeneratorService(defaults crypto.GeneratorOptions) *GeneratorService {
	return &GeneratorService{defaults: defaults}
}

// Options resolves a request against the configured defaults.
func (s *GeneratorService) Options(req model.GenerateRequest) crypto.GeneratorOptions {
	return crypto.GeneratorOptions{
		Length:    intOrDefault(req.Length, s.defaults.Length),
		Digits:    boolOrDefault(req.Digits, s.defaults.Digits),
		Symbols:   boolOrDefault(req.Symbols, s.defaults.Symbols),
		Uppercase: boolOrDefault(req.Uppercase, s.defaults.Uppercase),
	}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := s.Options(req)

	password, err := crypto.Generate(opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Classes:  crypto.ClassNames(opts),
	}, nil
}

func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func intOrDefault(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
