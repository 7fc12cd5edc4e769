package contract

import (
	"context"
	"strings"
	"time"

	"wallet-session-gateway/internal/adapter/provider"
	"wallet-session-gateway/internal/core/domain"
	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
)

// TxHandle polls for the receipt of one submitted transaction.
type TxHandle struct {
	handle       ports.WalletHandle
	hash         common.Hash
	msg          callMsg
	pollInterval time.Duration
	log          zerolog.Logger
}

// Hash returns the transaction hash.
func (t *TxHandle) Hash() string { return t.hash.Hex() }

// receipt keeps only the fields the gateway reads, so provider-specific extras never fail decoding.
type receipt struct {
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     hexutil.Uint64 `json:"blockNumber"`
	GasUsed         hexutil.Uint64 `json:"gasUsed"`
	Status          hexutil.Uint64 `json:"status"`
}

// Wait polls eth_getTransactionReceipt until the transaction is mined or ctx is done.
func (t *TxHandle) Wait(ctx context.Context) (*domain.TxReceipt, error) {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			var r *receipt
			if err := t.handle.Request(ctx, &r, "eth_getTransactionReceipt", t.hash); err != nil {
				classified := provider.ClassifyError(err)
				if apperror.HasCode(classified, apperror.CodeProviderUnavailable) || ctx.Err() != nil {
					return nil, classified
				}
				t.log.Debug().Err(err).Str("tx_hash", t.hash.Hex()).Msg("receipt poll failed, retrying")
				continue
			}
			if r == nil {
				continue
			}

			out := &domain.TxReceipt{
				Hash:        t.hash.Hex(),
				BlockNumber: uint64(r.BlockNumber),
				GasUsed:     uint64(r.GasUsed),
				Reverted:    r.Status == 0,
			}
			if out.Reverted {
				out.RevertReason = t.revertReason(ctx, out.BlockNumber)
			}
			return out, nil
		}
	}
}

// revertReason replays the call at the receipt block and decodes the Error(string) payload.
// It returns "" when the node gives no reason.
func (t *TxHandle) revertReason(ctx context.Context, block uint64) string {
	var out hexutil.Bytes
	err := t.handle.Request(ctx, &out, "eth_call", t.msg, hexutil.EncodeUint64(block))
	if err == nil {
		return ""
	}

	if data, ok := provider.ErrorData(err); ok {
		if s, ok := data.(string); ok {
			if raw, decErr := hexutil.Decode(s); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason
				}
			}
		}
	}

	msg := err.Error()
	if rest, found := strings.CutPrefix(msg, "execution reverted: "); found {
		return rest
	}
	if msg == "execution reverted" {
		return ""
	}
	return msg
}
