package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-session-gateway/internal/core/domain"
	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/internal/core/ports/mocks"
	"wallet-session-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAccount = "0xAbC0000000000000000000000000000000000001"

func idleSnapshot() *domain.SessionSnapshot {
	return &domain.SessionSnapshot{
		Contract:        "atm",
		ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		State:           domain.StateIdle,
		Account:         testAccount,
		Balance:         big.NewInt(2500000000000000000),
		Decimals:        18,
		Operations:      []domain.OperationKind{domain.OperationDeposit, domain.OperationWithdraw},
	}
}

func newATMController(ctrl *gomock.Controller) *mocks.MockSessionController {
	ctl := mocks.NewMockSessionController(ctrl)
	ctl.EXPECT().Name().Return("atm").AnyTimes()
	return ctl
}

func newTestRouter(t *testing.T, ctl ports.SessionController) *gin.Engine {
	t.Helper()
	return SetupRouter(RouterDeps{
		Controllers: []ports.SessionController{ctl},
		Logger:      zerolog.Nop(),
	})
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Auth Handler Tests ---

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(8 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "correct horse").Return("jwt_token", expiry, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewReader([]byte(`{"passphrase":"correct horse"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "jwt_token", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "wrong").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"passphrase":"wrong"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decode(t, w)["error_code"])
}

// --- Health Check Tests ---

func TestHealthCheck_AllHealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(nil)
	pg.EXPECT().Name().Return("postgres")

	router := gin.New()
	router.GET("/health", HealthCheck(time.Second, pg))
	w := do(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(nil)
	pg.EXPECT().Name().Return("postgres")
	rdb := mocks.NewMockHealthChecker(ctrl)
	rdb.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	rdb.EXPECT().Name().Return("redis")

	router := gin.New()
	router.GET("/health", HealthCheck(time.Second, pg, rdb))
	w := do(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]any)
	assert.Equal(t, "unhealthy", deps["redis"].(map[string]any)["status"])
}

func TestHealthCheck_SlowDependencyTimesOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	slow := mocks.NewMockHealthChecker(ctrl)
	slow.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	slow.EXPECT().Name().Return("wallet-provider")

	router := gin.New()
	router.GET("/health", HealthCheck(20*time.Millisecond, slow))
	w := do(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// --- Session Handler Tests ---

func TestSessions_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().Snapshot().Return(idleSnapshot())

	w := do(newTestRouter(t, ctl), http.MethodGet, "/api/v1/sessions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "atm", data[0].(map[string]any)["contract"])
}

func TestSessions_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().Snapshot().Return(idleSnapshot())

	w := do(newTestRouter(t, ctl), http.MethodGet, "/api/v1/sessions/atm", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "IDLE", data["state"])
	assert.Equal(t, "2.5", data["balance"])
	assert.Equal(t, "2500000000000000000", data["balance_raw"])
}

func TestSessions_UnknownContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)

	w := do(newTestRouter(t, ctl), http.MethodGet, "/api/v1/sessions/casino", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessions_Connect(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().Connect(gomock.Any()).Return(idleSnapshot(), nil)

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/connect", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testAccount, decode(t, w)["data"].(map[string]any)["account"])
}

func TestSessions_ConnectRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().Connect(gomock.Any()).Return(nil, apperror.ErrUserRejected(errors.New("User rejected the request.")))

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/connect", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decode(t, w)
	assert.Equal(t, apperror.CodeUserRejected, resp["error_code"])
	assert.Equal(t, "User rejected the request.", resp["reason"])
}

func TestSessions_RefreshBalanceNotConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().RefreshBalance(gomock.Any()).Return(nil, apperror.ErrNotConnected())

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/balance/refresh", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeNotConnected, decode(t, w)["error_code"])
}

func TestSessions_SubmitOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)

	opID := uuid.New()
	ctl.EXPECT().SubmitOperation(gomock.Any(), domain.OperationDeposit, "2.5").Return(&ports.OperationResult{
		Operation: domain.PendingOperation{ID: opID, Kind: domain.OperationDeposit, Arg: "2.5", Phase: domain.PhaseConfirmed, TxHash: "0xabc"},
		Receipt:   &domain.TxReceipt{Hash: "0xabc", BlockNumber: 7, GasUsed: 21000},
		Snapshot:  idleSnapshot(),
	}, nil)

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/operations", map[string]string{
		"kind": "DEPOSIT", "arg": " 2.5 ",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, opID.String(), data["operation"].(map[string]any)["id"])
	assert.Equal(t, float64(7), data["receipt"].(map[string]any)["block_number"])
	assert.Equal(t, "2.5", data["session"].(map[string]any)["balance"])
}

func TestSessions_SubmitOperationValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing kind", body: map[string]string{"arg": "1"}},
		{name: "malformed kind", body: map[string]string{"kind": "9lives", "arg": "1"}},
		{name: "unsafe arg", body: map[string]string{"kind": "deposit", "arg": "1; DROP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctl := newATMController(ctrl)

			w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/operations", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSessions_SubmitOperationReverted(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().SubmitOperation(gomock.Any(), domain.OperationWithdraw, "9").
		Return(nil, apperror.ErrOperationReverted("Insufficient balance"))

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/operations", map[string]string{
		"kind": "withdraw", "arg": "9",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["message"], "Insufficient balance")
}

func TestSessions_SubmitOperationInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().SubmitOperation(gomock.Any(), domain.OperationFreeze, "").
		Return(nil, apperror.ErrOperationInProgress())

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/operations", map[string]string{"kind": "freeze"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeOperationInProgress, decode(t, w)["error_code"])
}

func TestSessions_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)

	block := uint64(12)
	ctl.EXPECT().History(gomock.Any(), 5).Return([]domain.OperationRecord{{
		ID:          uuid.New(),
		Kind:        domain.OperationDeposit,
		Account:     testAccount,
		Value:       "0",
		Status:      domain.OperationStatusConfirmed,
		BlockNumber: &block,
		CreatedAt:   time.Now(),
	}}, nil)

	w := do(newTestRouter(t, ctl), http.MethodGet, "/api/v1/sessions/atm/operations?limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "CONFIRMED", data[0].(map[string]any)["status"])
}

func TestSessions_HistoryDefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().History(gomock.Any(), defaultHistoryLimit).Return(nil, nil)

	w := do(newTestRouter(t, ctl), http.MethodGet, "/api/v1/sessions/atm/operations", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessions_HistoryBadLimit(t *testing.T) {
	for _, q := range []string{"0", "101", "ten"} {
		ctrl := gomock.NewController(t)
		ctl := newATMController(ctrl)

		w := do(newTestRouter(t, ctl), http.MethodGet, "/api/v1/sessions/atm/operations?limit="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", q)
	}
}

func TestSessions_TransferOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)

	newOwner := "0x90F79bf6EB2c4f870365E785982E1f101E93b906"
	ctl.EXPECT().TransferOwnership(gomock.Any(), newOwner).Return(&ports.OperationResult{
		Operation: domain.PendingOperation{ID: uuid.New(), Kind: domain.OperationTransferOwnership, Phase: domain.PhaseConfirmed},
		Receipt:   &domain.TxReceipt{Hash: "0xdef", BlockNumber: 9},
		Snapshot:  idleSnapshot(),
	}, nil)

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/ownership", map[string]string{"new_owner": newOwner})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessions_TransferOwnershipBadAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/ownership", map[string]string{"new_owner": "alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessions_AccountsChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)

	snap := idleSnapshot()
	snap.State = domain.StateProviderDetected
	snap.Account = ""
	snap.Balance = nil
	ctl.EXPECT().AccountsChanged(gomock.Any(), []string{}).Return(snap, nil)

	w := do(newTestRouter(t, ctl), http.MethodPost, "/api/v1/sessions/atm/accounts-changed", map[string]any{"accounts": []string{}})

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "PROVIDER_DETECTED", data["state"])
	assert.Nil(t, data["balance"])
}

// --- Router Tests ---

func TestRouter_RequiresTokenWhenConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	tokenSvc := mocks.NewMockTokenService(ctrl)

	router := SetupRouter(RouterDeps{
		TokenSvc:    tokenSvc,
		Controllers: []ports.SessionController{ctl},
		Logger:      zerolog.Nop(),
	})

	w := do(router, http.MethodGet, "/api/v1/sessions/atm", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokenSvc.EXPECT().Validate("tok").Return(&ports.TokenClaims{Subject: "operator"}, nil)
	ctl.EXPECT().Snapshot().Return(idleSnapshot())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/atm", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NoAuthRouteWithoutAuthService(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newTestRouter(t, newATMController(ctrl))

	w := do(router, http.MethodPost, "/api/v1/auth/token", map[string]string{"passphrase": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SwaggerSpec(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newTestRouter(t, newATMController(ctrl))

	w := do(router, http.MethodGet, "/swagger/spec", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/sessions/{contract}/operations")
}

func TestRouter_SetsRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctl := newATMController(ctrl)
	ctl.EXPECT().Snapshot().Return(idleSnapshot())

	w := do(newTestRouter(t, ctl), http.MethodGet, "/api/v1/sessions/atm", nil)

	assert.Equal(t, w.Header().Get("X-Request-ID"), decode(t, w)["request_id"])
}
