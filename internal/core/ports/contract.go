package ports

import (
	"context"
	"math/big"

	"wallet-session-gateway/internal/core/domain"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ContractBinder binds a wallet handle, an account and a deployed contract into a proxy.
type ContractBinder interface {
	Bind(ctx context.Context, h WalletHandle, account, address string, descriptor abi.ABI) (ContractProxy, error)
}

// ContractProxy exposes a deployed contract's methods, signed by the bound account.
type ContractProxy interface {
	Account() string
	Address() string
	// Call invokes a view method and returns its decoded outputs.
	Call(ctx context.Context, method string, args ...any) ([]any, error)
	// Transact submits a state-mutating method. value may be nil.
	Transact(ctx context.Context, method string, value *big.Int, args ...any) (TxHandle, error)
}

// TxHandle tracks a submitted transaction until it is mined.
type TxHandle interface {
	Hash() string
	// Wait blocks until a receipt is available or ctx is done.
	// A reverted transaction is a receipt with Reverted set, not an error.
	Wait(ctx context.Context) (*domain.TxReceipt, error)
}
