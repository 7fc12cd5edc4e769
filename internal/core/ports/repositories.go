package ports

import (
	"context"
	"time"

	"wallet-session-gateway/internal/core/domain"
)

// OperationJournal persists an audit trail of submitted operations.
// Session state is never rebuilt from it.
type OperationJournal interface {
	Record(ctx context.Context, rec *domain.OperationRecord) error
	// Complete stores the terminal status, tx hash, block and reason of rec.
	Complete(ctx context.Context, rec *domain.OperationRecord) error
	ListRecent(ctx context.Context, contract string, limit int) ([]domain.OperationRecord, error)
}

// OperationLock serializes submissions for one contract+account across gateway replicas.
type OperationLock interface {
	// Acquire returns ok=false if another holder owns key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release deletes key only if it is still held with token.
	Release(ctx context.Context, key, token string) error
}
