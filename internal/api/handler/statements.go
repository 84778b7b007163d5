package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/founder-srm/foundathon/internal/api/apierr"
	"github.com/founder-srm/foundathon/internal/api/middleware"
	"github.com/founder-srm/foundathon/internal/api/response"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/services/lock"
	"github.com/founder-srm/foundathon/internal/services/stats"
)

// StatementHandler handles problem statement catalog and lock endpoints
type StatementHandler struct {
	statsService *stats.Service
	lockService  *lock.Service
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(statsService *stats.Service, lockService *lock.Service) *StatementHandler {
	return &StatementHandler{
		statsService: statsService,
		lockService:  lockService,
	}
}

// List handles GET /api/v1/problem-statements
func (h *StatementHandler) List(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.Overview(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	statements := make([]response.ProblemStatement, len(overview.Statements))
	for i, s := range overview.Statements {
		statements[i] = response.ProblemStatementFromModel(s.Statement, s.Occupancy)
	}

	response.JSON(w, http.StatusOK, response.StatementListResponse{Statements: statements})
}

// Lock handles POST /api/v1/problem-statements/{id}/lock
func (h *StatementHandler) Lock(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	statementID := model.StatementID(mux.Vars(r)["id"])

	grant, err := h.lockService.IssueLock(r.Context(), statementID, user.ID)
	if err != nil {
		// Lock rejections carry locked:false alongside the error code
		status, apiError := apierr.Classify(err)
		response.JSON(w, status, response.LockRejection{
			Locked: false,
			Error:  apiError,
		})
		return
	}

	response.JSON(w, http.StatusOK, response.LockResponseFromGrant(grant, grant.Occupancy))
}
