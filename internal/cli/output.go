package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case StatementList:
		o.printStatementList(v)
	case LockResult:
		o.printLockResult(v)
	case Team:
		o.printTeam(v)
	case Submission:
		o.printSubmission(v)
	case StatsResult:
		o.printStatsResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Statement response type
type Statement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Cap       int    `json:"cap"`
	Occupancy int    `json:"occupancy"`
	Remaining int    `json:"remaining"`
	Full      bool   `json:"full"`
}

// StatementList response type
type StatementList struct {
	Statements []Statement `json:"problem_statements"`
}

// LockResult response type
type LockResult struct {
	Locked           bool       `json:"locked"`
	LockToken        string     `json:"lock_token,omitempty"`
	LockExpiresAt    *time.Time `json:"lock_expires_at,omitempty"`
	ProblemStatement *Statement `json:"problem_statement,omitempty"`
}

// TeamMember response type
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Team response type
type Team struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	College            string       `json:"college"`
	LeaderID           string       `json:"leader_id"`
	Members            []TeamMember `json:"members"`
	ProblemStatementID string       `json:"problem_statement_id"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Submission response type
type Submission struct {
	TeamID      string    `json:"team_id"`
	Title       string    `json:"title"`
	DeckURL     string    `json:"deck_url"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatementStats response type
type StatementStats struct {
	Statement Statement `json:"statement"`
	FillRatio float64   `json:"fill_ratio"`
}

// StatsResult response type
type StatsResult struct {
	TotalUsers       int              `json:"total_users"`
	TotalTeams       int              `json:"total_teams"`
	TotalSubmissions int              `json:"total_submissions"`
	TotalCapacity    int              `json:"total_capacity"`
	Statements       []StatementStats `json:"statements"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Name, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	if u.IsAdmin {
		fmt.Println("Role: admin")
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printStatementList(l StatementList) {
	fmt.Printf("Problem Statements (%d):\n", len(l.Statements))
	for _, s := range l.Statements {
		status := fmt.Sprintf("%d/%d slots taken", s.Occupancy, s.Cap)
		if s.Full {
			status = "FULL"
		}
		fmt.Printf("  %s  %s [%s]\n", s.ID, s.Title, status)
	}
}

func (o *Output) printLockResult(r LockResult) {
	if !r.Locked {
		fmt.Println("Lock refused")
		return
	}
	if r.ProblemStatement != nil {
		fmt.Printf("Locked: %s (%s)\n", r.ProblemStatement.Title, r.ProblemStatement.ID)
	}
	if r.LockExpiresAt != nil {
		fmt.Printf("Expires: %s\n", r.LockExpiresAt.Format(time.RFC3339))
	}
	fmt.Printf("Token: %s\n", r.LockToken)
}

func (o *Output) printTeam(t Team) {
	fmt.Printf("Team: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("College: %s\n", t.College)
	fmt.Printf("Problem Statement: %s\n", t.ProblemStatementID)
	fmt.Printf("Members (%d):\n", len(t.Members))
	for _, m := range t.Members {
		fmt.Printf("  - %s <%s>\n", m.Name, m.Email)
	}
}

func (o *Output) printSubmission(s Submission) {
	fmt.Printf("Submission: %s\n", s.Title)
	fmt.Printf("Deck: %s\n", s.DeckURL)
	fmt.Printf("Submitted: %s\n", s.SubmittedAt.Format(time.RFC3339))
	if !s.UpdatedAt.Equal(s.SubmittedAt) {
		fmt.Printf("Updated: %s\n", s.UpdatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printStatsResult(s StatsResult) {
	fmt.Printf("Users: %d\n", s.TotalUsers)
	fmt.Printf("Teams: %d / %d capacity\n", s.TotalTeams, s.TotalCapacity)
	fmt.Printf("Submissions: %d\n", s.TotalSubmissions)
	fmt.Println("Statements:")
	for _, row := range s.Statements {
		fmt.Printf("  %s  %d/%d (%.0f%%)\n",
			row.Statement.ID, row.Statement.Occupancy, row.Statement.Cap, row.FillRatio*100)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
