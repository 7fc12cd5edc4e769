// Package walletsim is an in-process EIP-1193 wallet provider for tests.
// It serves the eth_* methods the gateway uses over a go-ethereum rpc.Server,
// so adapters are exercised through real JSON-RPC encoding.
package walletsim

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// ChainID is reported by eth_chainId (Hardhat's default).
const ChainID = 31337

// EIP-1193 provider error codes.
const (
	CodeUserRejected = 4001
	CodeDisconnected = 4900
)

// SentTx is a transaction the simulator accepted for signing.
type SentTx struct {
	Hash  common.Hash
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
}

// Sim holds the simulated wallet and chain state. Configure it before or between calls.
type Sim struct {
	mu sync.Mutex

	accounts     []string
	authorized   bool
	rejectAuth   bool
	rejectSign   bool
	disconnected bool
	confirmAfter int
	revertNext   *string

	callOutput []byte
	callErr    error
	calls      int

	head     uint64
	sent     []SentTx
	receipts map[common.Hash]*receiptState
	reverts  map[uint64]string

	server *rpc.Server
}

type receiptState struct {
	pollsLeft int
	receipt   Receipt
}

// New returns a simulator whose wallet holds accounts. Accounts are not authorized
// until RequestAccounts succeeds or Authorize is called.
func New(accounts ...string) *Sim {
	s := &Sim{
		accounts: accounts,
		head:     1,
		receipts: make(map[common.Hash]*receiptState),
		reverts:  make(map[uint64]string),
	}
	s.server = rpc.NewServer()
	if err := s.server.RegisterName("eth", &ethAPI{sim: s}); err != nil {
		panic(fmt.Sprintf("walletsim: register eth service: %v", err))
	}
	return s
}

// Server exposes the JSON-RPC server. It is also an http.Handler.
func (s *Sim) Server() *rpc.Server { return s.server }

// Client dials the simulator in-process.
func (s *Sim) Client() *rpc.Client { return rpc.DialInProc(s.server) }

// Authorize marks the wallet's accounts as already authorized for this origin.
func (s *Sim) Authorize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = true
}

// SetAccounts replaces the wallet's accounts, as when the user switches account.
func (s *Sim) SetAccounts(accounts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
}

// RejectAuthorization makes eth_requestAccounts fail with code 4001.
func (s *Sim) RejectAuthorization(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectAuth = reject
}

// RejectSigning makes eth_sendTransaction fail with code 4001.
func (s *Sim) RejectSigning(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectSign = reject
}

// Disconnect makes every method fail with code 4900.
func (s *Sim) Disconnect(disconnected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnected = disconnected
}

// ConfirmAfter sets how many receipt polls return null before a transaction is mined.
func (s *Sim) ConfirmAfter(polls int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmAfter = polls
}

// RevertNext makes the next accepted transaction mine with status 0.
// Replaying it with eth_call at its block yields Error(reason) revert data.
func (s *Sim) RevertNext(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revertNext = &reason
}

// SetCallOutput sets the raw return data of eth_call.
func (s *Sim) SetCallOutput(out []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callOutput = out
	s.callErr = nil
}

// SetCallError makes eth_call fail with err.
func (s *Sim) SetCallError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callErr = err
}

// SetBalance packs v as the uint256 output of the descriptor's method and serves it from eth_call.
func (s *Sim) SetBalance(descriptor abi.ABI, method string, v *big.Int) error {
	m, ok := descriptor.Methods[method]
	if !ok {
		return fmt.Errorf("walletsim: no method %q", method)
	}
	out, err := m.Outputs.Pack(v)
	if err != nil {
		return fmt.Errorf("walletsim: pack %s output: %w", method, err)
	}
	s.SetCallOutput(out)
	return nil
}

// Sent returns a copy of the accepted transactions in order.
func (s *Sim) Sent() []SentTx {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentTx(nil), s.sent...)
}

// Calls returns the number of eth_call requests served.
func (s *Sim) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ProviderError is an EIP-1193 error with an optional data payload.
type ProviderError struct {
	Code    int
	Message string
	Data    any
}

func (e *ProviderError) Error() string  { return e.Message }
func (e *ProviderError) ErrorCode() int { return e.Code }
func (e *ProviderError) ErrorData() any { return e.Data }

// Error(string) selector.
var revertSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

// RevertError builds the error a node returns for a call that reverted with reason.
func RevertError(reason string) *ProviderError {
	strType, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: strType}}.Pack(reason)
	data := append(append([]byte{}, revertSelector...), packed...)
	return &ProviderError{
		Code:    3,
		Message: "execution reverted: " + reason,
		Data:    hexutil.Encode(data),
	}
}

// Receipt is the JSON shape of eth_getTransactionReceipt.
type Receipt struct {
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     hexutil.Uint64 `json:"blockNumber"`
	GasUsed         hexutil.Uint64 `json:"gasUsed"`
	Status          hexutil.Uint64 `json:"status"`
}

// TransactionArgs is the JSON shape of eth_sendTransaction and eth_call arguments.
type TransactionArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value"`
}

// ethAPI is registered under the "eth" namespace. Only its exported methods are RPC-visible.
type ethAPI struct {
	sim *Sim
}

func (api *ethAPI) disconnected() error {
	if api.sim.disconnected {
		return &ProviderError{Code: CodeDisconnected, Message: "provider disconnected"}
	}
	return nil
}

func (api *ethAPI) ChainId() (hexutil.Uint64, error) {
	s := api.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := api.disconnected(); err != nil {
		return 0, err
	}
	return hexutil.Uint64(ChainID), nil
}

func (api *ethAPI) Accounts() ([]string, error) {
	s := api.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := api.disconnected(); err != nil {
		return nil, err
	}
	if !s.authorized {
		return []string{}, nil
	}
	return append([]string{}, s.accounts...), nil
}

func (api *ethAPI) RequestAccounts() ([]string, error) {
	s := api.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := api.disconnected(); err != nil {
		return nil, err
	}
	if s.rejectAuth {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "User rejected the request."}
	}
	s.authorized = true
	return append([]string{}, s.accounts...), nil
}

func (api *ethAPI) SendTransaction(args TransactionArgs) (common.Hash, error) {
	s := api.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := api.disconnected(); err != nil {
		return common.Hash{}, err
	}
	if s.rejectSign {
		return common.Hash{}, &ProviderError{Code: CodeUserRejected, Message: "User denied transaction signature."}
	}
	if args.From == nil || args.To == nil {
		return common.Hash{}, &ProviderError{Code: -32602, Message: "missing from or to"}
	}

	s.head++
	hash := common.BigToHash(new(big.Int).SetUint64(0xabc000 + s.head))
	value := new(big.Int)
	if args.Value != nil {
		value = args.Value.ToInt()
	}
	s.sent = append(s.sent, SentTx{Hash: hash, From: *args.From, To: *args.To, Data: args.Data, Value: value})

	status := hexutil.Uint64(1)
	if s.revertNext != nil {
		status = 0
		s.reverts[s.head] = *s.revertNext
		s.revertNext = nil
	}
	s.receipts[hash] = &receiptState{
		pollsLeft: s.confirmAfter,
		receipt: Receipt{
			TransactionHash: hash,
			BlockNumber:     hexutil.Uint64(s.head),
			GasUsed:         hexutil.Uint64(21000),
			Status:          status,
		},
	}
	return hash, nil
}

func (api *ethAPI) GetTransactionReceipt(hash common.Hash) (*Receipt, error) {
	s := api.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := api.disconnected(); err != nil {
		return nil, err
	}
	st, ok := s.receipts[hash]
	if !ok {
		return nil, nil
	}
	if st.pollsLeft > 0 {
		st.pollsLeft--
		return nil, nil
	}
	r := st.receipt
	return &r, nil
}

func (api *ethAPI) Call(ctx context.Context, args TransactionArgs, block *string) (hexutil.Bytes, error) {
	s := api.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := api.disconnected(); err != nil {
		return nil, err
	}
	s.calls++
	if block != nil {
		if n, err := hexutil.DecodeUint64(*block); err == nil {
			if reason, ok := s.reverts[n]; ok {
				return nil, RevertError(reason)
			}
		}
	}
	if s.callErr != nil {
		return nil, s.callErr
	}
	return append(hexutil.Bytes{}, s.callOutput...), nil
}
