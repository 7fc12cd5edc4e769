package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-session-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord() *domain.OperationRecord {
	return &domain.OperationRecord{
		ID:              uuid.New(),
		Contract:        "atm",
		ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		Account:         "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		Kind:            domain.OperationDeposit,
		Arg:             "2.5",
		Value:           "0",
		TxHash:          "0x00000000000000000000000000000000000000000000000000000000000abc01",
		Status:          domain.OperationStatusSubmitted,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

func operationColumnNames() []string {
	return []string{"id", "contract", "contract_address", "account", "kind", "arg", "value", "tx_hash",
		"status", "reason", "block_number", "created_at", "completed_at"}
}

func TestOperationJournal_Record(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	journal := NewOperationJournal(mock)
	rec := newTestRecord()

	mock.ExpectExec("INSERT INTO operations").
		WithArgs(
			rec.ID, rec.Contract, rec.ContractAddress, rec.Account,
			"deposit", rec.Arg, rec.Value, rec.TxHash,
			"SUBMITTED", "", (*int64)(nil), rec.CreatedAt, (*time.Time)(nil),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, journal.Record(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationJournal_Record_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO operations").WillReturnError(errors.New("connection reset"))

	err = NewOperationJournal(mock).Record(context.Background(), newTestRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert operation")
}

func TestOperationJournal_Complete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rec := newTestRecord()
	block := uint64(42)
	done := time.Now().UTC()
	rec.Status = domain.OperationStatusConfirmed
	rec.BlockNumber = &block
	rec.CompletedAt = &done

	mock.ExpectExec("UPDATE operations SET status").
		WithArgs("CONFIRMED", "", blockParam(&block), &done, rec.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, NewOperationJournal(mock).Complete(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationJournal_Complete_Unknown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE operations SET status").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = NewOperationJournal(mock).Complete(context.Background(), newTestRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOperationJournal_ListRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	first := newTestRecord()
	second := newTestRecord()
	second.Kind = domain.OperationWithdraw
	second.Status = domain.OperationStatusReverted
	second.Reason = "Insufficient balance"
	block := int64(9)
	done := time.Now().UTC().Truncate(time.Microsecond)

	rows := pgxmock.NewRows(operationColumnNames()).
		AddRow(second.ID, second.Contract, second.ContractAddress, second.Account,
			"withdraw", second.Arg, second.Value, second.TxHash,
			"REVERTED", second.Reason, &block, second.CreatedAt, &done).
		AddRow(first.ID, first.Contract, first.ContractAddress, first.Account,
			"deposit", first.Arg, first.Value, first.TxHash,
			"SUBMITTED", "", (*int64)(nil), first.CreatedAt, (*time.Time)(nil))

	mock.ExpectQuery("SELECT .+ FROM operations").
		WithArgs("atm", 20).
		WillReturnRows(rows)

	records, err := NewOperationJournal(mock).ListRecent(context.Background(), "atm", 20)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, domain.OperationWithdraw, records[0].Kind)
	assert.Equal(t, domain.OperationStatusReverted, records[0].Status)
	require.NotNil(t, records[0].BlockNumber)
	assert.Equal(t, uint64(9), *records[0].BlockNumber)
	assert.True(t, records[0].IsTerminal())

	assert.Nil(t, records[1].BlockNumber)
	assert.Nil(t, records[1].CompletedAt)
	assert.False(t, records[1].IsTerminal())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationJournal_ListRecent_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM operations").WillReturnError(errors.New("timeout"))

	_, err = NewOperationJournal(mock).ListRecent(context.Background(), "atm", 5)
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS operations").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, Migrate(context.Background(), mock, zerologNop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT to_regclass`).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	hc := NewHealthCheck(mock)
	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "operation-journal", hc.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_MissingTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT to_regclass`).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err = NewHealthCheck(mock).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations")
}
