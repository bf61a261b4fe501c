package service

import (
	"errors"
	"time"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

const tokenSubject = "passgen-client"

var (
	ErrInvalidPassphrase  = errors.New("invalid passphrase")
	ErrPassphraseRequired = errors.New("passphrase is required")
	ErrAuthDisabled       = errors.New("api authentication is not configured")
)

// AuthService exchanges the operator passphrase for API tokens.
type AuthService struct {
	passphraseHash string
	jwtSecret      string
	jwtExpiry      time.Duration
}

// NewAuthService creates a new AuthService. An empty passphraseHash disables
// token issuance.
func NewAuthService(passphraseHash, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		passphraseHash: passphraseHash,
		jwtSecret:      secret,
		jwtExpiry:      expiry,
	}
}

// IssueToken verifies the passphrase and returns a signed token.
func (s *AuthService) IssueToken(req model.TokenRequest) (model.TokenResponse, error) {
	if s.passphraseHash == "" {
		return model.TokenResponse{}, ErrAuthDisabled
	}
	if req.Passphrase == "" {
		return model.TokenResponse{}, ErrPassphraseRequired
	}

	match, err := crypto.VerifyPassphrase(req.Passphrase, s.passphraseHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidPassphrase
	}

	token, err := crypto.GenerateToken(tokenSubject, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.jwtExpiry),
	}, nil
}
