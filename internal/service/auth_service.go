package service

import (
	"context"
	"fmt"
	"time"

	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/pkg/apperror"
)

// OperatorSubject is the JWT subject issued to the gateway operator.
const OperatorSubject = "operator"

// AuthServiceImpl implements ports.AuthService for the single gateway operator.
type AuthServiceImpl struct {
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	operatorHash string
}

// NewAuthService creates an AuthServiceImpl. An empty operatorHash disables login.
func NewAuthService(hashSvc ports.HashService, tokenSvc ports.TokenService, operatorHash string) *AuthServiceImpl {
	return &AuthServiceImpl{
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		operatorHash: operatorHash,
	}
}

// Login checks the operator passphrase and returns a signed token.
func (s *AuthServiceImpl) Login(_ context.Context, passphrase string) (string, time.Time, error) {
	if s.operatorHash == "" || passphrase == "" {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(passphrase, s.operatorHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify passphrase: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(OperatorSubject)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}
