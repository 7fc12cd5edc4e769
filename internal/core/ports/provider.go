package ports

import "context"

// WalletHandle is the environment-supplied wallet provider.
// It is the signer as well as the node: every JSON-RPC method goes through Request.
type WalletHandle interface {
	Request(ctx context.Context, result any, method string, params ...any) error
}

// ProviderGateway detects the wallet provider and enumerates accounts.
type ProviderGateway interface {
	// Detect returns the provider handle, or nil when none is installed.
	// Repeated calls return the same handle.
	Detect(ctx context.Context) WalletHandle
	// ListAuthorizedAccounts returns already-authorized accounts without prompting.
	ListAuthorizedAccounts(ctx context.Context, h WalletHandle) ([]string, error)
	// RequestAuthorization prompts the wallet user to authorize accounts.
	RequestAuthorization(ctx context.Context, h WalletHandle) ([]string, error)
}
