package utils

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"neolink/internal/models"
)

func TestCreateApproachWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "approaches.xlsx")
	rows := []models.ApproachView{
		{DatetimeUTC: "2029-Apr-13 21:46", DistanceAU: 0.000254, VelocityKmS: 7.42, Designation: "99942", Name: "Apophis", DiameterKm: 0.37, PotentiallyHazardous: true},
		{DatetimeUTC: "2030-Mar-01 00:00", DistanceAU: 0.4, VelocityKmS: 12, Designation: "unknown", DiameterKm: models.Kilometers(math.NaN())},
	}

	require.NoError(t, CreateApproachWorkbook(path, rows, WorkbookInfo{SnapshotID: "snap", Source: "file", Criteria: "all"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Approaches", "Info"}, f.GetSheetList())

	got, err := f.GetRows("Approaches")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Apophis", got[1][4])
	assert.Equal(t, "Y", got[1][6])
	assert.Equal(t, "", got[2][5])
	assert.Equal(t, "N", got[2][6])

	hazardous, err := f.GetCellValue("Info", "B6")
	require.NoError(t, err)
	assert.Equal(t, "1", hazardous)

	distance, err := f.GetCellValue("Info", "B8")
	require.NoError(t, err)
	assert.Equal(t, "0.000254 au - 0.400000 au", distance)
}

func TestCreateApproachWorkbookEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, CreateApproachWorkbook(path, nil, WorkbookInfo{Criteria: "hazardous=true"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Approaches")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	timeRange, err := f.GetCellValue("Info", "B7")
	require.NoError(t, err)
	assert.Equal(t, "-", timeRange)
}
