package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"neolink/internal/models"
)

const (
	approachSheet = "Approaches"
	infoSheet     = "Info"
)

// WorkbookInfo is written to the info sheet next to the approach rows.
type WorkbookInfo struct {
	SnapshotID string
	Source     string
	Criteria   string
}

// CreateApproachWorkbook writes close approaches to an Excel file with a
// summary sheet.
func CreateApproachWorkbook(filepath string, rows []models.ApproachView, info WorkbookInfo) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", approachSheet); err != nil {
		return err
	}

	headers := []string{
		"Datetime (UTC)", "Distance (au)", "Velocity (km/s)",
		"Designation", "Name", "Diameter (km)", "Potentially Hazardous",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(approachSheet, cell, header)
	}

	numberStyle := getNumberStyle(f, "0.0000")
	for rowIdx, row := range rows {
		rowNum := rowIdx + 2

		diameter := any("")
		if row.DiameterKm.IsKnown() {
			diameter = float64(row.DiameterKm)
		}
		hazardous := "N"
		if row.PotentiallyHazardous {
			hazardous = "Y"
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		err := f.SetSheetRow(approachSheet, cell, &[]any{
			row.DatetimeUTC,
			row.DistanceAU,
			row.VelocityKmS,
			row.Designation,
			row.Name,
			diameter,
			hazardous,
		})
		if err != nil {
			return err
		}

		f.SetCellStyle(approachSheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("C%d", rowNum), numberStyle)
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(approachSheet, colName, colName, 20)
	}

	if len(rows) > 0 {
		lastRow := len(rows) + 1
		hazardRule := []excelize.ConditionalFormatOptions{
			{
				Type:     "cell",
				Criteria: "==",
				Value:    `"Y"`,
				Format:   getConditionalFormatStyle(f, "#FFCCCC"),
			},
		}
		if err := f.SetConditionalFormat(approachSheet, fmt.Sprintf("G2:G%d", lastRow), hazardRule); err != nil {
			return err
		}
	}

	if len(rows) > 1 {
		if err := createChart(f, len(rows)); err != nil {
			return err
		}
	}

	if err := createInfoSheet(f, rows, info); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	return f.SaveAs(filepath)
}

func getNumberStyle(f *excelize.File, format string) int {
	style, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &format,
	})
	if err != nil {
		return 0
	}
	return style
}

func createChart(f *excelize.File, count int) error {
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       "Distance",
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", approachSheet, count+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", approachSheet, count+1),
			},
		},
		Title: []excelize.RichTextRun{
			{
				Text: "Approach Distance (au)",
			},
		},
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{
			Width:  600,
			Height: 400,
		},
	}

	return f.AddChart(approachSheet, "I2", chart)
}

func createInfoSheet(f *excelize.File, rows []models.ApproachView, info WorkbookInfo) error {
	if _, err := f.NewSheet(infoSheet); err != nil {
		return err
	}

	timeRange := "-"
	distanceRange := "-"
	if len(rows) > 0 {
		timeRange = fmt.Sprintf("%s to %s", rows[0].DatetimeUTC, rows[len(rows)-1].DatetimeUTC)
		minDist, maxDist := distanceBounds(rows)
		distanceRange = fmt.Sprintf("%.6f au - %.6f au", minDist, maxDist)
	}

	metadata := [][2]any{
		{"Report Generated", time.Now().UTC().Format("2006-01-02 15:04:05")},
		{"Snapshot", info.SnapshotID},
		{"Source", info.Source},
		{"Criteria", info.Criteria},
		{"Total Records", len(rows)},
		{"Hazardous Records", countHazardous(rows)},
		{"Time Range", timeRange},
		{"Distance Range", distanceRange},
	}

	for i, pair := range metadata {
		row := i + 1
		f.SetCellValue(infoSheet, fmt.Sprintf("A%d", row), pair[0])
		f.SetCellValue(infoSheet, fmt.Sprintf("B%d", row), pair[1])
	}
	f.SetColWidth(infoSheet, "A", "A", 22)
	f.SetColWidth(infoSheet, "B", "B", 48)
	return nil
}

func distanceBounds(rows []models.ApproachView) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		lo = math.Min(lo, r.DistanceAU)
		hi = math.Max(hi, r.DistanceAU)
	}
	return lo, hi
}

func countHazardous(rows []models.ApproachView) int {
	n := 0
	for _, r := range rows {
		if r.PotentiallyHazardous {
			n++
		}
	}
	return n
}

func getConditionalFormatStyle(f *excelize.File, color string) *int {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}
