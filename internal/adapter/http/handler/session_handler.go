package handler

import (
	"sort"
	"strconv"

	"wallet-session-gateway/internal/adapter/http/dto"
	"wallet-session-gateway/internal/core/domain"
	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/pkg/apperror"
	"wallet-session-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// SessionHandler exposes one session controller per configured contract.
type SessionHandler struct {
	controllers map[string]ports.SessionController
}

// NewSessionHandler creates a SessionHandler keyed by controller name.
func NewSessionHandler(controllers ...ports.SessionController) *SessionHandler {
	m := make(map[string]ports.SessionController, len(controllers))
	for _, ctl := range controllers {
		m[ctl.Name()] = ctl
	}
	return &SessionHandler{controllers: m}
}

func (h *SessionHandler) controller(c *gin.Context) (ports.SessionController, bool) {
	ctl, ok := h.controllers[c.Param("contract")]
	if !ok {
		response.Error(c, apperror.ErrNotFound("contract"))
		return nil, false
	}
	return ctl, true
}

// List handles GET /api/v1/sessions.
func (h *SessionHandler) List(c *gin.Context) {
	names := make([]string, 0, len(h.controllers))
	for name := range h.controllers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]dto.SessionResponse, 0, len(names))
	for _, name := range names {
		out = append(out, dto.NewSessionResponse(h.controllers[name].Snapshot()))
	}
	response.OK(c, out)
}

// Get handles GET /api/v1/sessions/:contract.
func (h *SessionHandler) Get(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	response.OK(c, dto.NewSessionResponse(ctl.Snapshot()))
}

// Connect handles POST /api/v1/sessions/:contract/connect.
func (h *SessionHandler) Connect(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	snap, err := ctl.Connect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(snap))
}

// RefreshBalance handles POST /api/v1/sessions/:contract/balance/refresh.
func (h *SessionHandler) RefreshBalance(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	snap, err := ctl.RefreshBalance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(snap))
}

// SubmitOperation handles POST /api/v1/sessions/:contract/operations.
// The response is sent only after the transaction is mined and the balance re-read.
func (h *SessionHandler) SubmitOperation(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	res, err := ctl.SubmitOperation(c.Request.Context(), domain.ParseOperationKind(req.Kind), req.Arg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOperationResponse(res))
}

// History handles GET /api/v1/sessions/:contract/operations?limit=N.
func (h *SessionHandler) History(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			response.Error(c, apperror.Validation("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	records, err := ctl.History(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOperationRecordResponses(records))
}

// TransferOwnership handles POST /api/v1/sessions/:contract/ownership.
func (h *SessionHandler) TransferOwnership(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	var req dto.OwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	res, err := ctl.TransferOwnership(c.Request.Context(), req.NewOwner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOperationResponse(res))
}

// AccountsChanged handles POST /api/v1/sessions/:contract/accounts-changed.
func (h *SessionHandler) AccountsChanged(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	var req dto.AccountsChangedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	snap, err := ctl.AccountsChanged(c.Request.Context(), req.Accounts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewSessionResponse(snap))
}
