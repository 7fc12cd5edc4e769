package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"wallet-session-gateway/internal/core/domain"
	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Defaults applied when SessionConfig leaves a duration unset.
const (
	DefaultConfirmationTimeout = 2 * time.Minute
	DefaultLockTTL             = 3 * time.Minute
)

// SessionConfig fixes the contract a controller operates on.
type SessionConfig struct {
	Address             string
	Descriptor          abi.ABI
	Profile             ContractProfile
	ConfirmationTimeout time.Duration
	LockTTL             time.Duration
}

// SessionControllerImpl implements ports.SessionController.
//
// Every transition runs with busy set; a second transition fails with OperationInProgress.
// Fields are written under mu by the busy holder so Snapshot can read them at any time.
type SessionControllerImpl struct {
	cfg     SessionConfig
	gateway ports.ProviderGateway
	binder  ports.ContractBinder
	lock    ports.OperationLock    // nil = no cross-replica lock
	journal ports.OperationJournal // nil = journal disabled
	log     zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	busy    bool
	state   domain.SessionState
	handle  ports.WalletHandle
	account string
	proxy   ports.ContractProxy
	balance *big.Int
	pending *domain.PendingOperation
}

// NewSessionController creates a controller in NO_PROVIDER. lock and journal may be nil.
func NewSessionController(
	cfg SessionConfig,
	gateway ports.ProviderGateway,
	binder ports.ContractBinder,
	lock ports.OperationLock,
	journal ports.OperationJournal,
	log zerolog.Logger,
) (*SessionControllerImpl, error) {
	if err := cfg.Profile.Validate(cfg.Descriptor); err != nil {
		return nil, err
	}
	if cfg.ConfirmationTimeout <= 0 {
		cfg.ConfirmationTimeout = DefaultConfirmationTimeout
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultLockTTL
	}
	return &SessionControllerImpl{
		cfg:     cfg,
		gateway: gateway,
		binder:  binder,
		lock:    lock,
		journal: journal,
		log:     log,
		now:     time.Now,
		state:   domain.StateNoProvider,
	}, nil
}

// Name returns the contract profile name.
func (s *SessionControllerImpl) Name() string {
	return s.cfg.Profile.Name
}

// Snapshot returns a copy of the observable state.
func (s *SessionControllerImpl) Snapshot() *domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionControllerImpl) snapshotLocked() *domain.SessionSnapshot {
	snap := &domain.SessionSnapshot{
		Contract:        s.cfg.Profile.Name,
		ContractAddress: s.cfg.Address,
		State:           s.state,
		Account:         s.account,
		Decimals:        s.cfg.Profile.Decimals,
		Operations:      s.cfg.Profile.Kinds(),
	}
	if s.balance != nil {
		snap.Balance = new(big.Int).Set(s.balance)
	}
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	return snap
}

// ---- Transition guard ----

func (s *SessionControllerImpl) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return apperror.ErrOperationInProgress()
	}
	s.busy = true
	return nil
}

func (s *SessionControllerImpl) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// update applies fn under mu.
func (s *SessionControllerImpl) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *SessionControllerImpl) setState(next domain.SessionState) {
	s.update(func() {
		if s.state != next {
			s.log.Debug().Str("from", string(s.state)).Str("to", string(next)).Msg("session transition")
		}
		s.state = next
	})
}

// reset drops everything after a lost provider. A fresh connect is required.
func (s *SessionControllerImpl) reset(cause error) {
	s.log.Warn().Err(cause).Msg("wallet provider lost, session reset")
	s.update(func() {
		s.handle = nil
		s.account = ""
		s.proxy = nil
		s.balance = nil
		s.pending = nil
	})
	s.setState(domain.StateNoProvider)
}

// dropAccount returns to PROVIDER_DETECTED, keeping the handle.
func (s *SessionControllerImpl) dropAccount() {
	s.update(func() {
		s.account = ""
		s.proxy = nil
		s.balance = nil
		s.pending = nil
	})
	s.setState(domain.StateProviderDetected)
}

// lostProvider resets the session if err reports the provider gone.
func (s *SessionControllerImpl) lostProvider(err error) bool {
	if apperror.HasCode(err, apperror.CodeProviderUnavailable) {
		s.reset(err)
		return true
	}
	return false
}

// ---- Connect ----

// detect fills the handle if it is not already known.
func (s *SessionControllerImpl) detect(ctx context.Context) (ports.WalletHandle, error) {
	if s.handle != nil {
		return s.handle, nil
	}
	h := s.gateway.Detect(ctx)
	if h == nil {
		s.setState(domain.StateNoProvider)
		return nil, apperror.ErrProviderUnavailable(nil)
	}
	s.update(func() { s.handle = h })
	s.setState(domain.StateProviderDetected)
	return h, nil
}

// Init detects the provider and restores an already-authorized account without prompting.
// A missing provider or zero authorized accounts is not an error.
func (s *SessionControllerImpl) Init(ctx context.Context) (*domain.SessionSnapshot, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	h, err := s.detect(ctx)
	if err != nil {
		return s.Snapshot(), nil
	}

	accounts, err := s.gateway.ListAuthorizedAccounts(ctx, h)
	if err != nil {
		s.lostProvider(err)
		return nil, err
	}
	if len(accounts) == 0 {
		s.log.Debug().Msg("no previously authorized account")
		return s.Snapshot(), nil
	}

	if err := s.connectAccount(ctx, accounts[0]); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// Connect prompts the wallet for authorization and binds the first returned account.
func (s *SessionControllerImpl) Connect(ctx context.Context) (*domain.SessionSnapshot, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	accounts, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		s.log.Info().Msg("wallet authorized no accounts")
		s.dropAccount()
		return s.Snapshot(), nil
	}

	if err := s.connectAccount(ctx, accounts[0]); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// authorize runs the explicit wallet prompt.
func (s *SessionControllerImpl) authorize(ctx context.Context) ([]string, error) {
	h, err := s.detect(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.gateway.RequestAuthorization(ctx, h)
	if err != nil {
		if !s.lostProvider(err) {
			s.log.Info().Err(err).Msg("authorization not granted")
		}
		return nil, err
	}
	return accounts, nil
}

// connectAccount binds account and performs the best-effort initial balance read.
func (s *SessionControllerImpl) connectAccount(ctx context.Context, account string) error {
	if err := s.bind(ctx, account); err != nil {
		return err
	}

	if err := s.readBalance(ctx); err != nil {
		if apperror.HasCode(err, apperror.CodeProviderUnavailable) {
			return err
		}
		s.log.Warn().Err(err).Msg("initial balance read failed")
	}
	s.setState(domain.StateIdle)
	return nil
}

// bind moves ACCOUNT_CONNECTED -> SESSION_BOUND. On failure the state stays ACCOUNT_CONNECTED.
func (s *SessionControllerImpl) bind(ctx context.Context, account string) error {
	s.update(func() {
		s.account = account
		s.proxy = nil
		s.balance = nil
	})
	s.setState(domain.StateAccountConnected)

	proxy, err := s.binder.Bind(ctx, s.handle, account, s.cfg.Address, s.cfg.Descriptor)
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeBindingError) {
			err = apperror.ErrBinding(err)
		}
		s.log.Warn().Err(err).Str("account", account).Msg("contract bind failed")
		return err
	}

	s.update(func() { s.proxy = proxy })
	s.setState(domain.StateSessionBound)
	s.log.Info().Str("account", account).Msg("contract session bound")
	return nil
}

// AccountsChanged handles a wallet account switch. Any change returns the session to
// PROVIDER_DETECTED so the operator reconnects explicitly.
func (s *SessionControllerImpl) AccountsChanged(ctx context.Context, accounts []string) (*domain.SessionSnapshot, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if s.handle == nil {
		return s.Snapshot(), nil
	}
	if len(accounts) > 0 && s.account != "" && strings.EqualFold(accounts[0], s.account) {
		return s.Snapshot(), nil
	}
	if s.account != "" {
		s.log.Info().Str("previous", s.account).Msg("wallet account changed, session dropped")
	}
	s.dropAccount()
	return s.Snapshot(), nil
}

// ---- Balance ----

// RefreshBalance re-reads the balance of the bound account.
func (s *SessionControllerImpl) RefreshBalance(ctx context.Context) (*domain.SessionSnapshot, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if err := s.readBalance(ctx); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

func (s *SessionControllerImpl) requireSession() error {
	if !s.state.HasProvider() {
		return apperror.ErrProviderUnavailable(nil)
	}
	if s.proxy == nil {
		return apperror.ErrNotConnected()
	}
	return nil
}

func (s *SessionControllerImpl) readBalance(ctx context.Context) error {
	out, err := s.proxy.Call(ctx, s.cfg.Profile.BalanceMethod)
	if err != nil {
		if s.lostProvider(err) {
			return err
		}
		return apperror.ErrReadFailed(err)
	}
	if len(out) != 1 {
		return apperror.ErrReadFailed(fmt.Errorf("%s returned %d values", s.cfg.Profile.BalanceMethod, len(out)))
	}
	bal, ok := out[0].(*big.Int)
	if !ok {
		return apperror.ErrReadFailed(fmt.Errorf("%s returned %T", s.cfg.Profile.BalanceMethod, out[0]))
	}
	s.update(func() { s.balance = bal })
	s.log.Debug().Str("balance", bal.String()).Msg("balance read")
	return nil
}

// ---- Operations ----

// SubmitOperation validates, submits and confirms one operation.
func (s *SessionControllerImpl) SubmitOperation(ctx context.Context, kind domain.OperationKind, arg string) (*ports.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if kind == domain.OperationTransferOwnership {
		return s.transferOwnership(ctx, arg)
	}

	entry, ok := s.cfg.Profile.Operations[kind]
	if !ok {
		return nil, apperror.ErrUnsupportedOperation(string(kind))
	}
	args, value, err := entry.Build(arg)
	if err != nil {
		return nil, err
	}
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	op := s.newOperation(kind, arg, domain.PhaseSubmitted)
	return s.execute(ctx, op, entry.Method, value, args)
}

// TransferOwnership re-authorizes the signer, rebinds and submits transferOwnership(newOwner).
func (s *SessionControllerImpl) TransferOwnership(ctx context.Context, newOwner string) (*ports.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	return s.transferOwnership(ctx, newOwner)
}

func (s *SessionControllerImpl) transferOwnership(ctx context.Context, newOwner string) (*ports.OperationResult, error) {
	entry, ok := s.cfg.Profile.Operations[domain.OperationTransferOwnership]
	if !ok {
		return nil, apperror.ErrUnsupportedOperation(string(domain.OperationTransferOwnership))
	}
	args, value, err := entry.Build(newOwner)
	if err != nil {
		return nil, err
	}

	op := s.newOperation(domain.OperationTransferOwnership, strings.TrimSpace(newOwner), domain.PhaseAuthorizing)
	if err := s.reauthorize(ctx, op); err != nil {
		return nil, err
	}

	s.update(func() { op.Phase = domain.PhaseSubmitted })
	return s.execute(ctx, op, entry.Method, value, args)
}

// reauthorize is the explicit precondition of ownership transfer: the signer is
// re-confirmed by the wallet user and the proxy rebuilt for it.
func (s *SessionControllerImpl) reauthorize(ctx context.Context, op *domain.PendingOperation) error {
	prevState := s.state
	s.update(func() { s.pending = op })
	s.setState(domain.StateOperationPending)

	abort := func() {
		s.update(func() { s.pending = nil })
		if s.state != domain.StateNoProvider {
			s.setState(prevState)
		}
	}

	accounts, err := s.authorize(ctx)
	if err != nil {
		abort()
		return err
	}
	if len(accounts) == 0 {
		abort()
		return apperror.ErrUserRejected(fmt.Errorf("wallet authorized no accounts"))
	}

	s.update(func() { s.pending = nil })
	if err := s.bind(ctx, accounts[0]); err != nil {
		return err
	}

	s.update(func() { s.pending = op })
	s.setState(domain.StateOperationPending)
	return nil
}

func (s *SessionControllerImpl) newOperation(kind domain.OperationKind, arg string, phase domain.OperationPhase) *domain.PendingOperation {
	return &domain.PendingOperation{
		ID:        uuid.New(),
		Kind:      kind,
		Arg:       arg,
		Phase:     phase,
		StartedAt: s.now().UTC(),
	}
}

// execute submits the transaction, waits for confirmation and refreshes the balance.
func (s *SessionControllerImpl) execute(ctx context.Context, op *domain.PendingOperation, method string, value *big.Int, args []any) (*ports.OperationResult, error) {
	log := s.log.With().Str("op_id", op.ID.String()).Str("kind", string(op.Kind)).Logger()

	release, err := s.acquireLock(ctx)
	if err != nil {
		if s.pending == op {
			s.finish()
		}
		return nil, err
	}
	defer release()

	s.update(func() { s.pending = op })
	s.setState(domain.StateOperationPending)

	rec := &domain.OperationRecord{
		ID:              op.ID,
		Contract:        s.cfg.Profile.Name,
		ContractAddress: s.cfg.Address,
		Account:         s.account,
		Kind:            op.Kind,
		Arg:             op.Arg,
		Value:           "0",
		Status:          domain.OperationStatusSubmitted,
		CreatedAt:       op.StartedAt,
	}
	if value != nil {
		rec.Value = value.String()
	}

	tx, err := s.proxy.Transact(ctx, method, value, args...)
	if err != nil {
		s.update(func() { op.Phase = domain.PhaseFailed })
		rec.Status = domain.OperationStatusFailed
		rec.Reason = err.Error()
		s.recordOperation(ctx, rec)

		if s.lostProvider(err) {
			return nil, err
		}
		s.finish()
		log.Info().Err(err).Msg("operation submission failed")
		return nil, apperror.ErrSubmissionFailed(err)
	}

	s.update(func() { op.TxHash = tx.Hash() })
	rec.TxHash = tx.Hash()
	s.recordOperation(ctx, rec)
	log.Info().Str("tx_hash", tx.Hash()).Msg("operation submitted")

	// Submission is the point of no return: the caller's cancellation no longer applies.
	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ConfirmationTimeout)

	receipt, err := tx.Wait(waitCtx)
	cancel()

	settleCtx, cancelSettle := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ConfirmationTimeout)
	defer cancelSettle()

	if err != nil {
		rec.Status = domain.OperationStatusUnknown
		rec.Reason = err.Error()
		s.completeOperation(settleCtx, rec)

		if s.lostProvider(err) {
			return nil, err
		}
		s.update(func() { op.Phase = domain.PhaseFailed })
		if err := s.refreshAfter(settleCtx, log); err != nil && apperror.HasCode(err, apperror.CodeProviderUnavailable) {
			return nil, err
		}
		s.finish()
		log.Warn().Err(err).Msg("confirmation not observed")
		return nil, apperror.ErrConfirmationUnknown(err)
	}

	block := receipt.BlockNumber
	rec.BlockNumber = &block
	if receipt.Reverted {
		s.update(func() { op.Phase = domain.PhaseFailed })
		rec.Status = domain.OperationStatusReverted
		rec.Reason = receipt.RevertReason
		s.completeOperation(settleCtx, rec)

		if err := s.refreshAfter(settleCtx, log); err != nil && apperror.HasCode(err, apperror.CodeProviderUnavailable) {
			return nil, err
		}
		s.finish()
		log.Info().Str("reason", receipt.RevertReason).Msg("operation reverted")
		return nil, apperror.ErrOperationReverted(receipt.RevertReason)
	}

	s.update(func() { op.Phase = domain.PhaseConfirmed })
	rec.Status = domain.OperationStatusConfirmed
	s.completeOperation(settleCtx, rec)

	if err := s.refreshAfter(settleCtx, log); err != nil && apperror.HasCode(err, apperror.CodeProviderUnavailable) {
		return nil, err
	}
	s.finish()
	log.Info().Uint64("block", block).Msg("operation confirmed")

	return &ports.OperationResult{
		Operation: *op,
		Receipt:   receipt,
		Snapshot:  s.Snapshot(),
	}, nil
}

// refreshAfter re-reads the balance after an operation settles. Read failures other
// than a lost provider are logged; the operation outcome stands.
func (s *SessionControllerImpl) refreshAfter(ctx context.Context, log zerolog.Logger) error {
	err := s.readBalance(ctx)
	if err != nil && !apperror.HasCode(err, apperror.CodeProviderUnavailable) {
		log.Warn().Err(err).Msg("balance refresh after operation failed")
	}
	return err
}

// finish clears the pending operation and returns to IDLE.
func (s *SessionControllerImpl) finish() {
	s.update(func() { s.pending = nil })
	s.setState(domain.StateIdle)
}

// acquireLock takes the cross-replica lock for this contract and account.
// Lock backend failures are logged and ignored; a held lock is OperationInProgress.
func (s *SessionControllerImpl) acquireLock(ctx context.Context) (func(), error) {
	noop := func() {}
	if s.lock == nil {
		return noop, nil
	}

	key := fmt.Sprintf("oplock:%s:%s", strings.ToLower(s.cfg.Address), strings.ToLower(s.account))
	token, ok, err := s.lock.Acquire(ctx, key, s.cfg.LockTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("operation lock unavailable, continuing without it")
		return noop, nil
	}
	if !ok {
		return nil, apperror.ErrOperationInProgress()
	}
	return func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("operation lock release failed")
		}
	}, nil
}

func (s *SessionControllerImpl) recordOperation(ctx context.Context, rec *domain.OperationRecord) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Warn().Err(err).Str("op_id", rec.ID.String()).Msg("journal record failed")
	}
}

func (s *SessionControllerImpl) completeOperation(ctx context.Context, rec *domain.OperationRecord) {
	if s.journal == nil {
		return
	}
	now := s.now().UTC()
	rec.CompletedAt = &now
	if err := s.journal.Complete(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("op_id", rec.ID.String()).Msg("journal complete failed")
	}
}

// History returns recent journal entries for this contract, newest first.
func (s *SessionControllerImpl) History(ctx context.Context, limit int) ([]domain.OperationRecord, error) {
	if s.journal == nil {
		return []domain.OperationRecord{}, nil
	}
	records, err := s.journal.ListRecent(ctx, s.cfg.Profile.Name, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list operations: %w", err))
	}
	return records, nil
}
