package model

// StatementID is the stable identifier of a problem statement
type StatementID string

// ProblemStatement is an entry in the compiled-in problem statement catalog.
// The catalog is immutable at runtime; occupancy is always derived from the
// count of registered teams, never stored on the statement itself.
type ProblemStatement struct {
	ID      StatementID
	Title   string
	Summary string
	Cap     int
}

// StatementOccupancy pairs a statement with its current registration count
type StatementOccupancy struct {
	Statement ProblemStatement
	Occupancy int
}

// Full reports whether the statement has no remaining capacity
func (o StatementOccupancy) Full() bool {
	return o.Occupancy >= o.Statement.Cap
}

// Remaining returns the number of open slots, never negative
func (o StatementOccupancy) Remaining() int {
	if o.Occupancy >= o.Statement.Cap {
		return 0
	}
	return o.Statement.Cap - o.Occupancy
}
