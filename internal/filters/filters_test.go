package filters

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neolink/internal/models"
	"neolink/internal/neodb"
)

func buildDatabase(t *testing.T) *neodb.NEODatabase {
	t.Helper()

	neoRows := [][]string{
		{"433", "Eros", "16.84", "N"},
		{"99942", "Apophis", "0.37", "Y"},
		{"2020 AB", "", "", "N"},
	}
	var neos []models.NearEarthObject
	for _, row := range neoRows {
		neo, err := models.NewNearEarthObject(models.Zip(row, []string{"pdes", "name", "diameter", "pha"}))
		require.NoError(t, err)
		neos = append(neos, neo)
	}

	caRows := [][]string{
		{"433", "2020-Jan-01 06:00", "0.15", "5.5"},
		{"99942", "2029-Apr-13 21:46", "0.000254", "7.42"},
		{"2020 AB", "2020-Jan-01 23:10", "0.03", "9.1"},
		{"ghost", "2020-Jan-02 00:00", "0.4", "12.0"},
	}
	var approaches []models.CloseApproach
	for _, row := range caRows {
		ca, err := models.NewCloseApproach(models.Zip(row, []string{"des", "cd", "dist", "v_rel"}))
		require.NoError(t, err)
		approaches = append(approaches, ca)
	}

	return neodb.New(neos, approaches)
}

func designations(db *neodb.NEODatabase, c Criteria) []string {
	var out []string
	for ca := range db.Query(Create(c, db)...) {
		out = append(out, ca.Designation())
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCreateEmpty(t *testing.T) {
	db := buildDatabase(t)

	assert.Empty(t, Create(Criteria{}, db))
	assert.True(t, Criteria{}.Empty())
	assert.Len(t, slices.Collect(db.Query(Create(Criteria{}, db)...)), db.ApproachCount())
}

func TestDateFilters(t *testing.T) {
	db := buildDatabase(t)

	assert.Equal(t, []string{"433", "2020 AB"}, designations(db, Criteria{Date: day("2020-01-01")}))
	assert.Equal(t, []string{"99942", "ghost"}, designations(db, Criteria{StartDate: day("2020-01-02")}))
	assert.Equal(t, []string{"433", "2020 AB", "ghost"}, designations(db, Criteria{EndDate: day("2020-01-02")}))
	assert.Equal(t, []string{"ghost"}, designations(db, Criteria{StartDate: day("2020-01-02"), EndDate: day("2020-01-02")}))
}

func TestNumericFilters(t *testing.T) {
	db := buildDatabase(t)

	assert.Equal(t, []string{"99942", "2020 AB"}, designations(db, Criteria{DistanceMax: ptr(0.1)}))
	assert.Equal(t, []string{"433", "ghost"}, designations(db, Criteria{DistanceMin: ptr(0.15)}))
	assert.Equal(t, []string{"2020 AB", "ghost"}, designations(db, Criteria{VelocityMin: ptr(9.0)}))
	assert.Equal(t, []string{"433"}, designations(db, Criteria{VelocityMax: ptr(6.0)}))
}

func TestDiameterAndHazardNeedLinkedNEO(t *testing.T) {
	db := buildDatabase(t)

	assert.Equal(t, []string{"433"}, designations(db, Criteria{DiameterMin: ptr(1.0)}))
	assert.Equal(t, []string{"433", "99942"}, designations(db, Criteria{DiameterMax: ptr(100.0), DiameterMin: ptr(0.0)}))
	assert.Equal(t, []string{"99942"}, designations(db, Criteria{Hazardous: ptr(true)}))
	assert.Equal(t, []string{"433", "2020 AB"}, designations(db, Criteria{Hazardous: ptr(false)}))
}

func TestCriteriaKey(t *testing.T) {
	assert.Equal(t, "all", Criteria{}.Key())

	c := Criteria{Date: day("2020-01-01"), DistanceMax: ptr(0.1), Hazardous: ptr(true)}
	assert.Equal(t, "date=2020-01-01;dist_max=0.1;hazardous=true", c.Key())
}
