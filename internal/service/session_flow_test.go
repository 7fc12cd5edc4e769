package service

import (
	"context"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-session-gateway/internal/adapter/contract"
	"wallet-session-gateway/internal/adapter/provider"
	"wallet-session-gateway/internal/core/domain"
	"wallet-session-gateway/internal/testutil/walletsim"
	"wallet-session-gateway/pkg/apperror"
	"wallet-session-gateway/pkg/units"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSimSession wires a controller to the real provider gateway and binder,
// talking JSON-RPC over HTTP to a simulated wallet.
func newSimSession(t *testing.T, sim *walletsim.Sim) *SessionControllerImpl {
	t.Helper()
	srv := httptest.NewServer(sim.Server())
	t.Cleanup(srv.Close)

	gw := provider.NewGateway(srv.URL, time.Second, zerolog.Nop())
	t.Cleanup(gw.Close)

	svc, err := NewSessionController(SessionConfig{
		Address:             atmAddr,
		Descriptor:          descriptor(t, "atm"),
		Profile:             ATMProfile(18),
		ConfirmationTimeout: 2 * time.Second,
	}, gw, contract.NewBinder(5*time.Millisecond, zerolog.Nop()), nil, nil, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestSessionFlow_SilentRestoreThenDeposit(t *testing.T) {
	ctx := context.Background()
	sim := walletsim.New(testAccount)
	sim.Authorize()
	require.NoError(t, sim.SetBalance(descriptor(t, "atm"), "getBalance", wei("1000000000000000000")))
	svc := newSimSession(t, sim)

	snap, err := svc.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, snap.State)
	assert.Equal(t, common.HexToAddress(testAccount).Hex(), common.HexToAddress(snap.Account).Hex())
	assert.Equal(t, "1.0", units.FormatUnits(snap.Balance, 18))

	sim.ConfirmAfter(2)
	require.NoError(t, sim.SetBalance(descriptor(t, "atm"), "getBalance", wei("3500000000000000000")))
	callsBefore := sim.Calls()

	res, err := svc.SubmitOperation(ctx, domain.OperationDeposit, "2.5")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseConfirmed, res.Operation.Phase)
	assert.Equal(t, "3.5", units.FormatUnits(res.Snapshot.Balance, 18))
	assert.Equal(t, callsBefore+1, sim.Calls(), "balance re-read exactly once")

	sent := sim.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, res.Operation.TxHash, sent[0].Hash.Hex())
}

func TestSessionFlow_RevertReasonSurfaces(t *testing.T) {
	ctx := context.Background()
	sim := walletsim.New(testAccount)
	require.NoError(t, sim.SetBalance(descriptor(t, "atm"), "getBalance", big.NewInt(0)))
	svc := newSimSession(t, sim)

	_, err := svc.Connect(ctx)
	require.NoError(t, err)

	sim.RevertNext("Insufficient balance")
	_, err = svc.SubmitOperation(ctx, domain.OperationWithdraw, "1")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeOperationReverted))
	assert.Contains(t, err.Error(), "Insufficient balance")
	assert.Equal(t, domain.StateIdle, svc.Snapshot().State)
}

func TestSessionFlow_RejectedAuthorization(t *testing.T) {
	sim := walletsim.New(testAccount)
	sim.RejectAuthorization(true)
	svc := newSimSession(t, sim)

	_, err := svc.Connect(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeUserRejected))
	assert.Equal(t, domain.StateProviderDetected, svc.Snapshot().State)
}

func TestSessionFlow_ProviderDisconnect(t *testing.T) {
	ctx := context.Background()
	sim := walletsim.New(testAccount)
	require.NoError(t, sim.SetBalance(descriptor(t, "atm"), "getBalance", big.NewInt(1)))
	svc := newSimSession(t, sim)

	_, err := svc.Connect(ctx)
	require.NoError(t, err)

	sim.Disconnect(true)
	_, err = svc.RefreshBalance(ctx)
	assert.True(t, apperror.HasCode(err, apperror.CodeProviderUnavailable))
	assert.Equal(t, domain.StateNoProvider, svc.Snapshot().State)
}

func TestSessionFlow_NoProviderConfigured(t *testing.T) {
	gw := provider.NewGateway("", time.Second, zerolog.Nop())
	svc, err := NewSessionController(SessionConfig{
		Address:    atmAddr,
		Descriptor: descriptor(t, "atm"),
		Profile:    ATMProfile(18),
	}, gw, contract.NewBinder(0, zerolog.Nop()), nil, nil, zerolog.Nop())
	require.NoError(t, err)

	snap, err := svc.Init(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StateNoProvider, snap.State)

	_, err = svc.Connect(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeProviderUnavailable))
}
