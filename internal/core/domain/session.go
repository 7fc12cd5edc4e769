package domain

import "math/big"

// SessionState is the controller's position in the connect/bind/operate lifecycle.
type SessionState string

const (
	StateNoProvider       SessionState = "NO_PROVIDER"
	StateProviderDetected SessionState = "PROVIDER_DETECTED"
	StateAccountConnected SessionState = "ACCOUNT_CONNECTED"
	StateSessionBound     SessionState = "SESSION_BOUND"
	StateIdle             SessionState = "IDLE"
	StateOperationPending SessionState = "OPERATION_PENDING"
)

// HasProvider returns true once a wallet handle has been detected.
func (s SessionState) HasProvider() bool {
	return s != StateNoProvider && s != ""
}

// HasAccount returns true if an account is connected, bound or not.
func (s SessionState) HasAccount() bool {
	switch s {
	case StateAccountConnected, StateSessionBound, StateIdle, StateOperationPending:
		return true
	}
	return false
}

// IsBound returns true if a contract proxy exists for the connected account.
func (s SessionState) IsBound() bool {
	switch s {
	case StateSessionBound, StateIdle, StateOperationPending:
		return true
	}
	return false
}

// SessionSnapshot is a point-in-time copy of a controller's observable state.
// Balance is nil until a read has succeeded for the bound account.
type SessionSnapshot struct {
	Contract        string            `json:"contract"`
	ContractAddress string            `json:"contract_address"`
	State           SessionState      `json:"state"`
	Account         string            `json:"account,omitempty"`
	Balance         *big.Int          `json:"-"`
	Decimals        int32             `json:"decimals"`
	Pending         *PendingOperation `json:"pending,omitempty"`
	Operations      []OperationKind   `json:"operations"`
}
