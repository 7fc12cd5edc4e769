package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OperationKind names a state-mutating contract operation offered to the operator.
type OperationKind string

const (
	OperationDeposit           OperationKind = "deposit"
	OperationWithdraw          OperationKind = "withdraw"
	OperationFreeze            OperationKind = "freeze"
	OperationUnfreeze          OperationKind = "unfreeze"
	OperationBuyTickets        OperationKind = "buy-tickets"
	OperationDrawWinner        OperationKind = "draw-winner"
	OperationTransferOwnership OperationKind = "transfer-ownership"
)

// ParseOperationKind normalizes case, whitespace and underscores ("BUY_TICKETS" -> "buy-tickets").
// It does not check whether any contract supports the kind.
func ParseOperationKind(s string) OperationKind {
	s = strings.ToLower(strings.TrimSpace(s))
	return OperationKind(strings.ReplaceAll(s, "_", "-"))
}

// OperationPhase tracks a pending operation from wallet prompt to receipt.
type OperationPhase string

const (
	PhaseAuthorizing OperationPhase = "AUTHORIZING" // ownership transfer re-authorization
	PhaseSubmitted   OperationPhase = "SUBMITTED"
	PhaseConfirmed   OperationPhase = "CONFIRMED"
	PhaseFailed      OperationPhase = "FAILED"
)

// PendingOperation is the single in-flight operation of a session.
type PendingOperation struct {
	ID        uuid.UUID      `json:"id"`
	Kind      OperationKind  `json:"kind"`
	Arg       string         `json:"arg,omitempty"`
	Phase     OperationPhase `json:"phase"`
	TxHash    string         `json:"tx_hash,omitempty"`
	StartedAt time.Time      `json:"started_at"`
}

// IsTerminal returns true if the operation no longer blocks the session.
func (p *PendingOperation) IsTerminal() bool {
	return p.Phase == PhaseConfirmed || p.Phase == PhaseFailed
}

// TxReceipt is the mined outcome of a submitted transaction.
type TxReceipt struct {
	Hash         string `json:"hash"`
	BlockNumber  uint64 `json:"block_number"`
	GasUsed      uint64 `json:"gas_used"`
	Reverted     bool   `json:"reverted"`
	RevertReason string `json:"revert_reason,omitempty"`
}

// OperationStatus is the journal outcome of an operation.
type OperationStatus string

const (
	OperationStatusSubmitted OperationStatus = "SUBMITTED"
	OperationStatusConfirmed OperationStatus = "CONFIRMED"
	OperationStatusReverted  OperationStatus = "REVERTED"
	OperationStatusFailed    OperationStatus = "FAILED"  // never reached the chain
	OperationStatusUnknown   OperationStatus = "UNKNOWN" // submitted, confirmation not observed
)

// OperationRecord is an append-only journal entry for one submitted operation.
type OperationRecord struct {
	ID              uuid.UUID       `json:"id"`
	Contract        string          `json:"contract"`
	ContractAddress string          `json:"contract_address"`
	Account         string          `json:"account"`
	Kind            OperationKind   `json:"kind"`
	Arg             string          `json:"arg,omitempty"`
	Value           string          `json:"value"` // native units, base 10
	TxHash          string          `json:"tx_hash,omitempty"`
	Status          OperationStatus `json:"status"`
	Reason          string          `json:"reason,omitempty"`
	BlockNumber     *uint64         `json:"block_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

// IsTerminal returns true if the record will not change again.
func (r *OperationRecord) IsTerminal() bool {
	return r.Status != OperationStatusSubmitted
}
