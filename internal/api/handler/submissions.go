package handler

import (
	"encoding/json"
	"net/http"

	"github.com/founder-srm/foundathon/internal/api/middleware"
	"github.com/founder-srm/foundathon/internal/api/request"
	"github.com/founder-srm/foundathon/internal/api/response"
	"github.com/founder-srm/foundathon/internal/services/submission"
)

// SubmissionHandler handles pitch deck submission endpoints
type SubmissionHandler struct {
	submissionService *submission.Service
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *submission.Service) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// Put handles PUT /api/v1/teams/me/submission
func (h *SubmissionHandler) Put(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Title == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}

	sub, err := h.submissionService.Submit(r.Context(), user.ID, req.Title, req.DeckURL)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmissionFromModel(sub))
}

// Get handles GET /api/v1/teams/me/submission
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	sub, err := h.submissionService.GetForLeader(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmissionFromModel(sub))
}
