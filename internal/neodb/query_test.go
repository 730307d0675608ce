package neodb

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neolink/internal/models"
)

func TestQueryWithoutFiltersYieldsEverythingOnce(t *testing.T) {
	db := sampleDatabase(t)

	all := slices.Collect(db.Query())
	require.Len(t, all, db.ApproachCount())

	designations := make([]string, 0, len(all))
	for _, ca := range all {
		designations = append(designations, ca.Designation())
	}
	assert.Equal(t, []string{"433", "99942", "433", "unknown", "2020 AB"}, designations)
}

func TestQueryIsRestartable(t *testing.T) {
	db := sampleDatabase(t)
	seq := db.Query()

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestQueryMatchesAllFilters(t *testing.T) {
	db := sampleDatabase(t)

	near := func(ca *models.CloseApproach) bool { return ca.Distance < 0.16 }
	slow := func(ca *models.CloseApproach) bool { return ca.Velocity < 8 }
	filters := []Filter{near, slow}

	got := slices.Collect(db.Query(filters...))
	require.Len(t, got, 2)

	yielded := make(map[*models.CloseApproach]bool)
	for _, ca := range got {
		yielded[ca] = true
		assert.True(t, near(ca) && slow(ca))
	}
	for ca := range db.Query() {
		if yielded[ca] {
			continue
		}
		assert.False(t, near(ca) && slow(ca))
	}
}

func TestQueryShortCircuits(t *testing.T) {
	db := sampleDatabase(t)

	var secondCalls int
	rejectAll := func(*models.CloseApproach) bool { return false }
	counting := func(*models.CloseApproach) bool {
		secondCalls++
		return true
	}

	assert.Empty(t, slices.Collect(db.Query(rejectAll, counting)))
	assert.Zero(t, secondCalls)
}

func TestQueryIsLazy(t *testing.T) {
	db := sampleDatabase(t)

	var evaluated int
	counting := func(*models.CloseApproach) bool {
		evaluated++
		return true
	}

	for range db.Query(counting) {
		break
	}
	assert.Equal(t, 1, evaluated)
}

func TestLimit(t *testing.T) {
	db := sampleDatabase(t)

	assert.Len(t, slices.Collect(Limit(db.Query(), 2)), 2)
	assert.Len(t, slices.Collect(Limit(db.Query(), 0)), db.ApproachCount())
	assert.Len(t, slices.Collect(Limit(db.Query(), 100)), db.ApproachCount())
}
