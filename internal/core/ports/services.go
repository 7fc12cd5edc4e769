package ports

import (
	"context"
	"time"

	"wallet-session-gateway/internal/core/domain"
)

// HashService handles passphrase hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// AuthService authenticates the operator of the gateway.
type AuthService interface {
	Login(ctx context.Context, passphrase string) (string, time.Time, error) // token, expiry, error
}

// --- Service Ports (Business Logic) ---

// SessionController drives one contract session through connect, read and operate.
// All methods are safe for concurrent use; at most one transition is in flight.
type SessionController interface {
	Name() string
	Snapshot() *domain.SessionSnapshot
	// Init detects the provider and silently restores an already-authorized account.
	Init(ctx context.Context) (*domain.SessionSnapshot, error)
	// Connect prompts the wallet for authorization and binds the first account.
	Connect(ctx context.Context) (*domain.SessionSnapshot, error)
	RefreshBalance(ctx context.Context) (*domain.SessionSnapshot, error)
	SubmitOperation(ctx context.Context, kind domain.OperationKind, arg string) (*OperationResult, error)
	// TransferOwnership re-authorizes, rebinds and then submits the ownership transfer.
	TransferOwnership(ctx context.Context, newOwner string) (*OperationResult, error)
	// AccountsChanged handles a wallet account switch or disconnect.
	AccountsChanged(ctx context.Context, accounts []string) (*domain.SessionSnapshot, error)
	History(ctx context.Context, limit int) ([]domain.OperationRecord, error)
}

// OperationResult is the outcome of a confirmed operation.
type OperationResult struct {
	Operation domain.PendingOperation
	Receipt   *domain.TxReceipt
	Snapshot  *domain.SessionSnapshot
}
