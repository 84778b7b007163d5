package model

import "time"

// Submission is a team's presentation deck, at most one per team.
// Re-submitting before the deadline replaces the previous deck URL.
type Submission struct {
	TeamID      TeamID
	Title       string
	DeckURL     string
	SubmittedAt time.Time
	UpdatedAt   time.Time
}
