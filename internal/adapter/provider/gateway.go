package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
)

// Handle adapts a go-ethereum RPC client to ports.WalletHandle.
type Handle struct {
	client *rpc.Client
}

// NewHandle wraps an already dialed client.
func NewHandle(client *rpc.Client) *Handle {
	return &Handle{client: client}
}

// Request issues one JSON-RPC call.
func (h *Handle) Request(ctx context.Context, result any, method string, params ...any) error {
	return h.client.CallContext(ctx, result, method, params...)
}

// Close releases the underlying connection.
func (h *Handle) Close() {
	h.client.Close()
}

// Gateway implements ports.ProviderGateway over a JSON-RPC endpoint advertised by the environment.
// The handle is dialed at most once and never replaced, so a session reset after a
// provider failure keeps using the same handle. Restart the process to re-dial.
type Gateway struct {
	url         string
	dialTimeout time.Duration
	log         zerolog.Logger

	once   sync.Once
	handle *Handle
}

// NewGateway creates a gateway for url. An empty url means no provider is installed.
func NewGateway(url string, dialTimeout time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		url:         strings.TrimSpace(url),
		dialTimeout: dialTimeout,
		log:         log.With().Str("component", "provider").Logger(),
	}
}

// Detect dials the provider once. A failed or absent provider stays absent for the process lifetime.
func (g *Gateway) Detect(ctx context.Context) ports.WalletHandle {
	g.once.Do(func() {
		if g.url == "" {
			g.log.Info().Msg("no wallet provider configured")
			return
		}
		dialCtx := ctx
		if g.dialTimeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(ctx, g.dialTimeout)
			defer cancel()
		}
		client, err := rpc.DialContext(dialCtx, g.url)
		if err != nil {
			g.log.Warn().Err(err).Str("url", g.url).Msg("wallet provider unreachable")
			return
		}
		g.handle = NewHandle(client)
		g.log.Info().Str("url", g.url).Msg("wallet provider detected")
	})
	if g.handle == nil {
		// Avoid returning a typed nil inside the interface.
		return nil
	}
	return g.handle
}

// ListAuthorizedAccounts returns accounts the wallet has already authorized, without prompting.
func (g *Gateway) ListAuthorizedAccounts(ctx context.Context, h ports.WalletHandle) ([]string, error) {
	return g.accounts(ctx, h, "eth_accounts")
}

// RequestAuthorization asks the wallet user to authorize accounts.
func (g *Gateway) RequestAuthorization(ctx context.Context, h ports.WalletHandle) ([]string, error) {
	return g.accounts(ctx, h, "eth_requestAccounts")
}

func (g *Gateway) accounts(ctx context.Context, h ports.WalletHandle, method string) ([]string, error) {
	if h == nil {
		return nil, apperror.ErrProviderUnavailable(nil)
	}
	var accounts []string
	if err := h.Request(ctx, &accounts, method); err != nil {
		g.log.Debug().Err(err).Str("method", method).Msg("account request failed")
		return nil, ClassifyError(err)
	}
	g.log.Debug().Str("method", method).Int("count", len(accounts)).Msg("accounts listed")
	return accounts, nil
}

// Close shuts down the cached handle, if any.
func (g *Gateway) Close() {
	if g.handle != nil {
		g.handle.Close()
	}
}

// Ping implements ports.HealthChecker. A gateway with no provider configured reports healthy.
func (g *Gateway) Ping(ctx context.Context) error {
	if g.url == "" {
		return nil
	}
	h := g.Detect(ctx)
	if h == nil {
		return fmt.Errorf("wallet provider %s unreachable", g.url)
	}
	var chainID string
	return h.Request(ctx, &chainID, "eth_chainId")
}

// Name returns the dependency name.
func (g *Gateway) Name() string {
	return "wallet-provider"
}
