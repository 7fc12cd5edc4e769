package postgres

import (
	"context"
	"fmt"

	"wallet-session-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const operationColumns = `id, contract, contract_address, account, kind, arg, value, tx_hash,
	status, reason, block_number, created_at, completed_at`

// OperationJournal implements ports.OperationJournal.
type OperationJournal struct {
	pool Pool
}

// NewOperationJournal creates a new OperationJournal.
func NewOperationJournal(pool Pool) *OperationJournal {
	return &OperationJournal{pool: pool}
}

// Record inserts rec. Recording the same ID twice keeps the first row.
func (j *OperationJournal) Record(ctx context.Context, rec *domain.OperationRecord) error {
	query := `INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING`

	_, err := j.pool.Exec(ctx, query,
		rec.ID, rec.Contract, rec.ContractAddress, rec.Account,
		string(rec.Kind), rec.Arg, rec.Value, rec.TxHash,
		string(rec.Status), rec.Reason, blockParam(rec.BlockNumber),
		rec.CreatedAt, rec.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// Complete stores the final outcome of a previously recorded operation.
func (j *OperationJournal) Complete(ctx context.Context, rec *domain.OperationRecord) error {
	query := `UPDATE operations SET status = $1, reason = $2, block_number = $3, completed_at = $4
		WHERE id = $5`

	tag, err := j.pool.Exec(ctx, query,
		string(rec.Status), rec.Reason, blockParam(rec.BlockNumber), rec.CompletedAt, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("complete operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("operation not found: %s", rec.ID)
	}
	return nil
}

// ListRecent returns up to limit operations for contract, newest first.
func (j *OperationJournal) ListRecent(ctx context.Context, contract string, limit int) ([]domain.OperationRecord, error) {
	query := `SELECT ` + operationColumns + ` FROM operations
		WHERE contract = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := j.pool.Query(ctx, query, contract, limit)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	records := make([]domain.OperationRecord, 0, limit)
	for rows.Next() {
		rec, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return records, nil
}

func scanOperation(row pgx.Row) (*domain.OperationRecord, error) {
	var (
		rec          domain.OperationRecord
		kind, status string
		block        *int64
	)
	err := row.Scan(
		&rec.ID, &rec.Contract, &rec.ContractAddress, &rec.Account,
		&kind, &rec.Arg, &rec.Value, &rec.TxHash,
		&status, &rec.Reason, &block, &rec.CreatedAt, &rec.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan operation: %w", err)
	}
	rec.Kind = domain.OperationKind(kind)
	rec.Status = domain.OperationStatus(status)
	if block != nil {
		b := uint64(*block)
		rec.BlockNumber = &b
	}
	return &rec, nil
}

// blockParam maps a block number onto BIGINT; nil stays NULL.
func blockParam(b *uint64) *int64 {
	if b == nil {
		return nil
	}
	v := int64(*b)
	return &v
}
