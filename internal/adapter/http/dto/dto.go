package dto

import (
	"time"

	"wallet-session-gateway/internal/core/domain"
	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/pkg/units"
)

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required,max=256"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// OperationRequest is the request body for submitting an operation.
type OperationRequest struct {
	Kind string `json:"kind" binding:"required,operation_kind"`
	Arg  string `json:"arg" binding:"max=128,safe_arg"`
}

// OwnershipRequest is the request body for an ownership transfer.
type OwnershipRequest struct {
	NewOwner string `json:"new_owner" binding:"required,hex_address"`
}

// AccountsChangedRequest reports the wallet's current accounts. An empty list means disconnected.
type AccountsChangedRequest struct {
	Accounts []string `json:"accounts" binding:"max=16,dive,hex_address"`
}

// SessionResponse is the UI view of a session.
type SessionResponse struct {
	Contract        string           `json:"contract"`
	ContractAddress string           `json:"contract_address"`
	State           string           `json:"state"`
	Account         string           `json:"account,omitempty"`
	Balance         *string          `json:"balance"`     // display units, e.g. "2.5"
	BalanceRaw      *string          `json:"balance_raw"` // native units, base 10
	Pending         *PendingResponse `json:"pending,omitempty"`
	Operations      []string         `json:"operations"`
}

// PendingResponse describes the in-flight operation.
type PendingResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Arg       string `json:"arg,omitempty"`
	Phase     string `json:"phase"`
	TxHash    string `json:"tx_hash,omitempty"`
	StartedAt string `json:"started_at"`
}

// ReceiptResponse describes a mined transaction.
type ReceiptResponse struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}

// OperationResponse is returned once an operation is confirmed.
type OperationResponse struct {
	Operation PendingResponse `json:"operation"`
	Receipt   ReceiptResponse `json:"receipt"`
	Session   SessionResponse `json:"session"`
}

// OperationRecordResponse is one journal entry.
type OperationRecordResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Arg         string  `json:"arg,omitempty"`
	Account     string  `json:"account"`
	Value       string  `json:"value"`
	TxHash      string  `json:"tx_hash,omitempty"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
	BlockNumber *uint64 `json:"block_number,omitempty"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// NewSessionResponse renders snap, formatting the balance in display units.
func NewSessionResponse(snap *domain.SessionSnapshot) SessionResponse {
	resp := SessionResponse{
		Contract:        snap.Contract,
		ContractAddress: snap.ContractAddress,
		State:           string(snap.State),
		Account:         snap.Account,
		Operations:      make([]string, 0, len(snap.Operations)),
	}
	if snap.Balance != nil {
		display := units.FormatUnits(snap.Balance, snap.Decimals)
		raw := snap.Balance.String()
		resp.Balance = &display
		resp.BalanceRaw = &raw
	}
	if snap.Pending != nil {
		p := NewPendingResponse(*snap.Pending)
		resp.Pending = &p
	}
	for _, k := range snap.Operations {
		resp.Operations = append(resp.Operations, string(k))
	}
	return resp
}

// NewPendingResponse renders a pending operation.
func NewPendingResponse(op domain.PendingOperation) PendingResponse {
	return PendingResponse{
		ID:        op.ID.String(),
		Kind:      string(op.Kind),
		Arg:       op.Arg,
		Phase:     string(op.Phase),
		TxHash:    op.TxHash,
		StartedAt: op.StartedAt.Format(time.RFC3339),
	}
}

// NewOperationResponse renders a confirmed operation.
func NewOperationResponse(res *ports.OperationResult) OperationResponse {
	out := OperationResponse{Operation: NewPendingResponse(res.Operation)}
	if res.Receipt != nil {
		out.Receipt = ReceiptResponse{
			TxHash:      res.Receipt.Hash,
			BlockNumber: res.Receipt.BlockNumber,
			GasUsed:     res.Receipt.GasUsed,
		}
	}
	if res.Snapshot != nil {
		out.Session = NewSessionResponse(res.Snapshot)
	}
	return out
}

// NewOperationRecordResponses renders journal entries.
func NewOperationRecordResponses(records []domain.OperationRecord) []OperationRecordResponse {
	out := make([]OperationRecordResponse, 0, len(records))
	for _, r := range records {
		item := OperationRecordResponse{
			ID:          r.ID.String(),
			Kind:        string(r.Kind),
			Arg:         r.Arg,
			Account:     r.Account,
			Value:       r.Value,
			TxHash:      r.TxHash,
			Status:      string(r.Status),
			Reason:      r.Reason,
			BlockNumber: r.BlockNumber,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		}
		if r.CompletedAt != nil {
			s := r.CompletedAt.Format(time.RFC3339)
			item.CompletedAt = &s
		}
		out = append(out, item)
	}
	return out
}
