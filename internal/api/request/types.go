package request

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TeamMember is a single member in a team registration
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterTeamRequest is the request body for registering a team.
// The lock token must have been issued for the same problem statement
// and for the authenticated user.
type RegisterTeamRequest struct {
	Name               string       `json:"name"`
	College            string       `json:"college"`
	Members            []TeamMember `json:"members"`
	ProblemStatementID string       `json:"problem_statement_id"`
	LockToken          string       `json:"lock_token"`
}

// UpdateMembersRequest is the request body for replacing a team's roster
type UpdateMembersRequest struct {
	Members []TeamMember `json:"members"`
}

// SubmitRequest is the request body for creating or replacing a submission
type SubmitRequest struct {
	Title   string `json:"title"`
	DeckURL string `json:"deck_url"`
}
