package stats

import (
	"context"

	"github.com/founder-srm/foundathon/internal/catalog"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage"
)

// StatementStats is the per-statement slice of the admin overview
type StatementStats struct {
	Statement model.ProblemStatement
	Occupancy int
	Remaining int
	FillRatio float64
	Full      bool
}

// Overview is the aggregate view backing the admin dashboard
type Overview struct {
	TotalUsers       int
	TotalTeams       int
	TotalSubmissions int
	TotalCapacity    int
	Statements       []StatementStats
}

// Service computes read-only aggregates for the admin dashboard
type Service struct {
	storage storage.Storage
	catalog *catalog.Catalog
}

// New creates a new stats Service
func New(store storage.Storage, cat *catalog.Catalog) *Service {
	return &Service{
		storage: store,
		catalog: cat,
	}
}

// Overview derives the dashboard aggregates from live counts.
// Statements with zero registrations still appear, at occupancy 0.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	counts, err := s.storage.CountTeamsByStatement(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.storage.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	submissions, err := s.storage.CountSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalUsers:       users,
		TotalSubmissions: submissions,
	}

	for _, ps := range s.catalog.List() {
		occ := model.StatementOccupancy{Statement: ps, Occupancy: counts[ps.ID]}

		ratio := 0.0
		if ps.Cap > 0 {
			ratio = float64(occ.Occupancy) / float64(ps.Cap)
		}

		overview.Statements = append(overview.Statements, StatementStats{
			Statement: ps,
			Occupancy: occ.Occupancy,
			Remaining: occ.Remaining(),
			FillRatio: ratio,
			Full:      occ.Full(),
		})
		overview.TotalTeams += occ.Occupancy
		overview.TotalCapacity += ps.Cap
	}

	return overview, nil
}
