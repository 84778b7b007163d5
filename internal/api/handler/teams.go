package handler

import (
	"encoding/json"
	"net/http"

	"github.com/founder-srm/foundathon/internal/api/middleware"
	"github.com/founder-srm/foundathon/internal/api/request"
	"github.com/founder-srm/foundathon/internal/api/response"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/services/team"
)

// TeamHandler handles team registration and roster endpoints
type TeamHandler struct {
	teamController *team.Controller
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamController *team.Controller) *TeamHandler {
	return &TeamHandler{
		teamController: teamController,
	}
}

// Register handles POST /api/v1/teams
func (h *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.RegisterTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.LockToken == "" {
		WriteError(w, NewInvalidRequestError("lock_token is required"))
		return
	}
	if req.ProblemStatementID == "" {
		WriteError(w, NewInvalidRequestError("problem_statement_id is required"))
		return
	}

	created, err := h.teamController.RegisterTeam(r.Context(), user.ID, team.RegisterRequest{
		Name:        req.Name,
		College:     req.College,
		Members:     membersFromRequest(req.Members),
		StatementID: model.StatementID(req.ProblemStatementID),
		LockToken:   req.LockToken,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TeamFromModel(created))
}

// GetMe handles GET /api/v1/teams/me
func (h *TeamHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	t, err := h.teamController.GetTeamForLeader(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamFromModel(t))
}

// UpdateMembers handles PATCH /api/v1/teams/me/members
func (h *TeamHandler) UpdateMembers(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.UpdateMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	t, err := h.teamController.UpdateMembers(r.Context(), user.ID, membersFromRequest(req.Members))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamFromModel(t))
}

func membersFromRequest(members []request.TeamMember) []model.TeamMember {
	out := make([]model.TeamMember, len(members))
	for i, m := range members {
		out[i] = model.TeamMember{Name: m.Name, Email: m.Email}
	}
	return out
}
