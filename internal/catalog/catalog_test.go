package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founder-srm/foundathon/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default(0)

	require.Greater(t, cat.Len(), 0)
	for _, ps := range cat.List() {
		assert.NotEmpty(t, ps.ID)
		assert.NotEmpty(t, ps.Title)
		assert.Equal(t, DefaultCap, ps.Cap)
	}
}

func TestDefaultCatalogCustomCap(t *testing.T) {
	cat := Default(25)
	for _, ps := range cat.List() {
		assert.Equal(t, 25, ps.Cap)
	}
}

func TestGet(t *testing.T) {
	cat := New([]model.ProblemStatement{
		{ID: "ps-a", Title: "A", Cap: 10},
	})

	ps, err := cat.Get("ps-a")
	require.NoError(t, err)
	assert.Equal(t, "A", ps.Title)

	_, err = cat.Get("ps-z")
	assert.ErrorIs(t, err, model.ErrUnknownStatement)
}

func TestListCopies(t *testing.T) {
	cat := New([]model.ProblemStatement{
		{ID: "ps-a", Title: "A", Cap: 10},
	})

	list := cat.List()
	list[0].Title = "mutated"

	ps, err := cat.Get("ps-a")
	require.NoError(t, err)
	assert.Equal(t, "A", ps.Title)
}

func TestStatementOccupancy(t *testing.T) {
	ps := model.ProblemStatement{ID: "ps-a", Cap: 2}

	occ := model.StatementOccupancy{Statement: ps, Occupancy: 1}
	assert.False(t, occ.Full())
	assert.Equal(t, 1, occ.Remaining())

	occ.Occupancy = 2
	assert.True(t, occ.Full())
	assert.Equal(t, 0, occ.Remaining())

	// Over-cap (soft cap tolerance) never reports negative remaining
	occ.Occupancy = 3
	assert.True(t, occ.Full())
	assert.Equal(t, 0, occ.Remaining())
}
