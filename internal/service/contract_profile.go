package service

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"wallet-session-gateway/internal/core/domain"
	"wallet-session-gateway/pkg/apperror"
	"wallet-session-gateway/pkg/units"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ArgBuilder turns the operator's argument string into ABI arguments and a call value.
// It must not touch the network; failures are InvalidArgument.
type ArgBuilder func(arg string) (args []any, value *big.Int, err error)

// OperationSpec maps an operation kind onto a contract method.
type OperationSpec struct {
	Method string
	Build  ArgBuilder
}

// ContractProfile describes how a contract's methods are exposed as operations.
type ContractProfile struct {
	Name          string
	BalanceMethod string
	Decimals      int32
	Operations    map[domain.OperationKind]OperationSpec
}

// ATMProfile exposes deposit, withdraw, freeze, unfreeze and ownership transfer.
func ATMProfile(decimals int32) ContractProfile {
	return ContractProfile{
		Name:          "atm",
		BalanceMethod: "getBalance",
		Decimals:      decimals,
		Operations: map[domain.OperationKind]OperationSpec{
			domain.OperationDeposit:           {Method: "deposit", Build: amountArg(decimals)},
			domain.OperationWithdraw:          {Method: "withdraw", Build: amountArg(decimals)},
			domain.OperationFreeze:            {Method: "freezeAccount", Build: boolArg(true)},
			domain.OperationUnfreeze:          {Method: "freezeAccount", Build: boolArg(false)},
			domain.OperationTransferOwnership: {Method: "transferOwnership", Build: addressArg},
		},
	}
}

// LotteryProfile exposes ticket purchases at a fixed unit price, the draw and ownership transfer.
func LotteryProfile(decimals int32, ticketPrice string) (ContractProfile, error) {
	if _, err := units.ParseUnits(ticketPrice, decimals); err != nil {
		return ContractProfile{}, fmt.Errorf("invalid ticket price %q: %w", ticketPrice, err)
	}
	return ContractProfile{
		Name:          "lottery",
		BalanceMethod: "getBalance",
		Decimals:      decimals,
		Operations: map[domain.OperationKind]OperationSpec{
			domain.OperationBuyTickets:        {Method: "buyTickets", Build: ticketsArg(ticketPrice, decimals)},
			domain.OperationDrawWinner:        {Method: "drawWinner", Build: noArgs},
			domain.OperationTransferOwnership: {Method: "transferOwnership", Build: addressArg},
		},
	}, nil
}

// Validate checks every mapped method against the descriptor, so a redeployed
// contract with a changed interface fails at startup rather than at submit time.
func (p ContractProfile) Validate(descriptor abi.ABI) error {
	bal, ok := descriptor.Methods[p.BalanceMethod]
	if !ok {
		return fmt.Errorf("%s: descriptor has no balance method %q", p.Name, p.BalanceMethod)
	}
	if !bal.IsConstant() || len(bal.Outputs) != 1 {
		return fmt.Errorf("%s: balance method %q must be a view returning one value", p.Name, p.BalanceMethod)
	}
	for kind, op := range p.Operations {
		m, ok := descriptor.Methods[op.Method]
		if !ok {
			return fmt.Errorf("%s: operation %s maps to unknown method %q", p.Name, kind, op.Method)
		}
		if m.IsConstant() {
			return fmt.Errorf("%s: operation %s maps to view method %q", p.Name, kind, op.Method)
		}
	}
	return nil
}

// Kinds returns the supported operation kinds in a stable order.
func (p ContractProfile) Kinds() []domain.OperationKind {
	kinds := make([]domain.OperationKind, 0, len(p.Operations))
	for k := range p.Operations {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func amountArg(decimals int32) ArgBuilder {
	return func(arg string) ([]any, *big.Int, error) {
		amount, err := units.ParseUnits(arg, decimals)
		if err != nil {
			return nil, nil, apperror.ErrInvalidArgument(fmt.Sprintf("invalid amount %q: %v", arg, err))
		}
		return []any{amount}, nil, nil
	}
}

func ticketsArg(unitPrice string, decimals int32) ArgBuilder {
	return func(arg string) ([]any, *big.Int, error) {
		count, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
		if err != nil || count == 0 {
			return nil, nil, apperror.ErrInvalidArgument(fmt.Sprintf("invalid ticket count %q: must be a positive whole number", arg))
		}
		value, err := units.MulUnits(unitPrice, count, decimals)
		if err != nil {
			return nil, nil, apperror.ErrInvalidArgument(fmt.Sprintf("ticket total: %v", err))
		}
		return []any{new(big.Int).SetUint64(count)}, value, nil
	}
}

func boolArg(v bool) ArgBuilder {
	return func(string) ([]any, *big.Int, error) {
		return []any{v}, nil, nil
	}
}

func noArgs(string) ([]any, *big.Int, error) {
	return nil, nil, nil
}

func addressArg(arg string) ([]any, *big.Int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil, apperror.ErrInvalidArgument("address is required")
	}
	if !common.IsHexAddress(arg) {
		return nil, nil, apperror.ErrInvalidArgument(fmt.Sprintf("invalid address %q", arg))
	}
	return []any{common.HexToAddress(arg)}, nil, nil
}
