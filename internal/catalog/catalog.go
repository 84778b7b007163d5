package catalog

import (
	"github.com/founder-srm/foundathon/internal/model"
)

// DefaultCap is the deployment-wide maximum number of teams per statement
const DefaultCap = 15

// Catalog is the immutable set of problem statements for this deployment.
// It is built once at startup; nothing mutates it afterwards.
type Catalog struct {
	statements []model.ProblemStatement
	byID       map[model.StatementID]model.ProblemStatement
}

// New creates a catalog from the given statements
func New(statements []model.ProblemStatement) *Catalog {
	byID := make(map[model.StatementID]model.ProblemStatement, len(statements))
	for _, ps := range statements {
		byID[ps.ID] = ps
	}
	return &Catalog{
		statements: statements,
		byID:       byID,
	}
}

// Default returns the compiled-in catalog with the given per-statement cap.
// A cap of 0 means DefaultCap.
func Default(cap int) *Catalog {
	if cap <= 0 {
		cap = DefaultCap
	}
	return New(withCap(defaultStatements, cap))
}

// Get returns the statement with the given ID
func (c *Catalog) Get(id model.StatementID) (model.ProblemStatement, error) {
	ps, ok := c.byID[id]
	if !ok {
		return model.ProblemStatement{}, model.ErrUnknownStatement
	}
	return ps, nil
}

// List returns all statements in catalog order
func (c *Catalog) List() []model.ProblemStatement {
	out := make([]model.ProblemStatement, len(c.statements))
	copy(out, c.statements)
	return out
}

// Len returns the number of statements in the catalog
func (c *Catalog) Len() int {
	return len(c.statements)
}

func withCap(statements []model.ProblemStatement, cap int) []model.ProblemStatement {
	out := make([]model.ProblemStatement, len(statements))
	for i, ps := range statements {
		ps.Cap = cap
		out[i] = ps
	}
	return out
}
