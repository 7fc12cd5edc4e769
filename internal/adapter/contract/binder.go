package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"wallet-session-gateway/internal/adapter/provider"
	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
)

// DefaultPollInterval is the receipt polling interval when none is configured.
const DefaultPollInterval = 2 * time.Second

// Binder implements ports.ContractBinder over the wallet's JSON-RPC methods.
type Binder struct {
	pollInterval time.Duration
	log          zerolog.Logger
}

// NewBinder creates a binder whose transaction handles poll receipts every pollInterval.
func NewBinder(pollInterval time.Duration, log zerolog.Logger) *Binder {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Binder{pollInterval: pollInterval, log: log}
}

// Bind builds a proxy for the contract at address, signed by account.
func (b *Binder) Bind(ctx context.Context, h ports.WalletHandle, account, address string, descriptor abi.ABI) (ports.ContractProxy, error) {
	if h == nil {
		return nil, apperror.ErrBinding(fmt.Errorf("no wallet handle"))
	}
	account = strings.TrimSpace(account)
	if !common.IsHexAddress(account) {
		return nil, apperror.ErrBinding(fmt.Errorf("invalid signer account %q", account))
	}
	if !common.IsHexAddress(strings.TrimSpace(address)) {
		return nil, apperror.ErrBinding(fmt.Errorf("invalid contract address %q", address))
	}
	if len(descriptor.Methods) == 0 {
		return nil, apperror.ErrBinding(fmt.Errorf("descriptor has no methods"))
	}

	return &Proxy{
		handle:       h,
		account:      common.HexToAddress(account),
		address:      common.HexToAddress(strings.TrimSpace(address)),
		abi:          descriptor,
		pollInterval: b.pollInterval,
		log:          b.log,
	}, nil
}

// callMsg is the JSON argument object of eth_call and eth_sendTransaction.
type callMsg struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value,omitempty"`
}

// Proxy is a contract bound to one signer account.
type Proxy struct {
	handle       ports.WalletHandle
	account      common.Address
	address      common.Address
	abi          abi.ABI
	pollInterval time.Duration
	log          zerolog.Logger
}

// Account returns the checksummed signer address.
func (p *Proxy) Account() string { return p.account.Hex() }

// Address returns the checksummed contract address.
func (p *Proxy) Address() string { return p.address.Hex() }

// Call runs a view method against the latest block.
func (p *Proxy) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := p.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}

	var out hexutil.Bytes
	msg := callMsg{From: p.account, To: &p.address, Data: data}
	if err := p.handle.Request(ctx, &out, "eth_call", msg, "latest"); err != nil {
		return nil, provider.ClassifyError(err)
	}

	values, err := p.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", method, err)
	}
	return values, nil
}

// Transact asks the wallet to sign and send a call to method with the given value.
func (p *Proxy) Transact(ctx context.Context, method string, value *big.Int, args ...any) (ports.TxHandle, error) {
	data, err := p.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}

	msg := callMsg{From: p.account, To: &p.address, Data: data}
	if value != nil && value.Sign() > 0 {
		msg.Value = (*hexutil.Big)(value)
	}

	var hash common.Hash
	if err := p.handle.Request(ctx, &hash, "eth_sendTransaction", msg); err != nil {
		return nil, provider.ClassifyError(err)
	}

	p.log.Debug().
		Str("method", method).
		Str("tx_hash", hash.Hex()).
		Msg("transaction sent")

	return &TxHandle{
		handle:       p.handle,
		hash:         hash,
		msg:          msg,
		pollInterval: p.pollInterval,
		log:          p.log,
	}, nil
}
