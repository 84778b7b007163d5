package model

import "time"

// TeamID uniquely identifies a registered team
type TeamID string

// TeamMember is a participant listed on a team's registration.
// Members other than the leader do not need accounts.
type TeamMember struct {
	Name  string
	Email string
}

// Team is a committed registration against a problem statement.
// StatementID is set exactly once at creation and never changes;
// locking a statement is final.
type Team struct {
	ID          TeamID
	Name        string
	College     string
	LeaderID    UserID
	Members     []TeamMember
	StatementID StatementID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Team size bounds, leader included
const (
	MinTeamSize = 2
	MaxTeamSize = 4
)
