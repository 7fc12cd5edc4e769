package provider

import (
	"context"
	"errors"

	"wallet-session-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/rpc"
)

// EIP-1193 provider error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeDisconnected      = 4900
	CodeChainDisconnected = 4901
)

// ClassifyError maps wallet transport and EIP-1193 failures onto application errors.
// JSON-RPC errors with other codes (reverts, bad params) and context errors are returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case CodeUserRejected, CodeUnauthorized:
			return apperror.ErrUserRejected(err)
		case CodeDisconnected, CodeChainDisconnected:
			return apperror.ErrProviderUnavailable(err)
		}
		return err
	}

	// No JSON-RPC response at all: the provider is gone.
	return apperror.ErrProviderUnavailable(err)
}

// ErrorData returns the data payload of a JSON-RPC error, if any.
func ErrorData(err error) (any, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return dataErr.ErrorData(), true
	}
	return nil, false
}
