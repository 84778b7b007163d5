package response

import (
	"time"

	"github.com/founder-srm/foundathon/internal/api/apierr"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/services/auth"
	"github.com/founder-srm/foundathon/internal/services/lock"
	"github.com/founder-srm/foundathon/internal/services/stats"
)

// User represents a user in API responses
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:      string(u.ID),
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// ProblemStatement represents a catalog entry joined with live occupancy
type ProblemStatement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Cap       int    `json:"cap"`
	Occupancy int    `json:"occupancy"`
	Remaining int    `json:"remaining"`
	Full      bool   `json:"full"`
}

// ProblemStatementFromModel converts a statement and its occupancy count
func ProblemStatementFromModel(ps model.ProblemStatement, occupancy int) ProblemStatement {
	occ := model.StatementOccupancy{Statement: ps, Occupancy: occupancy}
	return ProblemStatement{
		ID:        string(ps.ID),
		Title:     ps.Title,
		Summary:   ps.Summary,
		Cap:       ps.Cap,
		Occupancy: occupancy,
		Remaining: occ.Remaining(),
		Full:      occ.Full(),
	}
}

// StatementListResponse is the response for listing problem statements
type StatementListResponse struct {
	Statements []ProblemStatement `json:"problem_statements"`
}

// LockResponse is the response for a lock issuance attempt
type LockResponse struct {
	Locked           bool              `json:"locked"`
	LockToken        string            `json:"lock_token,omitempty"`
	LockExpiresAt    *time.Time        `json:"lock_expires_at,omitempty"`
	ProblemStatement *ProblemStatement `json:"problem_statement,omitempty"`
}

// LockRejection is the response for a refused lock issuance
type LockRejection struct {
	Locked bool           `json:"locked"`
	Error  apierr.APIError `json:"error"`
}

// LockResponseFromGrant creates a LockResponse from a granted lock
func LockResponseFromGrant(g *lock.Grant, occupancy int) LockResponse {
	ps := ProblemStatementFromModel(g.Statement, occupancy)
	expiresAt := g.ExpiresAt
	return LockResponse{
		Locked:           true,
		LockToken:        g.Token,
		LockExpiresAt:    &expiresAt,
		ProblemStatement: &ps,
	}
}

// TeamMember represents a team member in API responses
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Team represents a registered team
type Team struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	College            string       `json:"college"`
	LeaderID           string       `json:"leader_id"`
	Members            []TeamMember `json:"members"`
	ProblemStatementID string       `json:"problem_statement_id"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// TeamFromModel converts a model.Team
func TeamFromModel(t *model.Team) Team {
	members := make([]TeamMember, len(t.Members))
	for i, m := range t.Members {
		members[i] = TeamMember{Name: m.Name, Email: m.Email}
	}
	return Team{
		ID:                 string(t.ID),
		Name:               t.Name,
		College:            t.College,
		LeaderID:           string(t.LeaderID),
		Members:            members,
		ProblemStatementID: string(t.StatementID),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// Submission represents a team's pitch deck submission
type Submission struct {
	TeamID      string    `json:"team_id"`
	Title       string    `json:"title"`
	DeckURL     string    `json:"deck_url"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubmissionFromModel converts a model.Submission
func SubmissionFromModel(s *model.Submission) Submission {
	return Submission{
		TeamID:      string(s.TeamID),
		Title:       s.Title,
		DeckURL:     s.DeckURL,
		SubmittedAt: s.SubmittedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// StatementStats is a per-statement row in the admin overview
type StatementStats struct {
	Statement ProblemStatement `json:"statement"`
	FillRatio float64          `json:"fill_ratio"`
}

// StatsResponse is the response for the admin stats endpoint
type StatsResponse struct {
	TotalUsers       int              `json:"total_users"`
	TotalTeams       int              `json:"total_teams"`
	TotalSubmissions int              `json:"total_submissions"`
	TotalCapacity    int              `json:"total_capacity"`
	Statements       []StatementStats `json:"statements"`
}

// StatsResponseFromOverview converts a stats.Overview
func StatsResponseFromOverview(o *stats.Overview) StatsResponse {
	rows := make([]StatementStats, len(o.Statements))
	for i, s := range o.Statements {
		rows[i] = StatementStats{
			Statement: ProblemStatementFromModel(s.Statement, s.Occupancy),
			FillRatio: s.FillRatio,
		}
	}
	return StatsResponse{
		TotalUsers:       o.TotalUsers,
		TotalTeams:       o.TotalTeams,
		TotalSubmissions: o.TotalSubmissions,
		TotalCapacity:    o.TotalCapacity,
		Statements:       rows,
	}
}
