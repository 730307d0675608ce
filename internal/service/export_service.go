package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"neolink/internal/filters"
	"neolink/internal/models"
	"neolink/internal/neodb"
	"neolink/internal/utils"
	"neolink/pkg/logger"
)

var csvHeader = []string{
	"datetime_utc", "distance_au", "velocity_km_s",
	"designation", "name", "diameter_km", "potentially_hazardous",
}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat accepts a case-insensitive format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnsupportedFormat)
	}
}

func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

type ExportResult struct {
	Path   string       `json:"path"`
	Format ExportFormat `json:"format"`
	Rows   int          `json:"rows"`
}

type ExportService interface {
	Export(ctx context.Context, format ExportFormat, criteria filters.Criteria, limit int) (*ExportResult, error)
}

type ExportConfig struct {
	OutputDir string
	MaxRows   int
}

type exportService struct {
	dataset DatasetService
	log     *logger.Logger
	config  ExportConfig
}

func NewExportService(dataset DatasetService, log *logger.Logger, config ExportConfig) ExportService {
	if config.OutputDir == "" {
		config.OutputDir = os.TempDir()
	}
	return &exportService{
		dataset: dataset,
		log:     log.With("component", "export"),
		config:  config,
	}
}

func (s *exportService) Export(ctx context.Context, format ExportFormat, criteria filters.Criteria, limit int) (*ExportResult, error) {
	format, err := ParseExportFormat(string(format))
	if err != nil {
		return nil, err
	}

	snapshot, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}

	if s.config.MaxRows > 0 && (limit <= 0 || limit > s.config.MaxRows) {
		limit = s.config.MaxRows
	}

	db := snapshot.DB
	rows := make([]models.ApproachView, 0)
	for ca := range neodb.Limit(db.Query(filters.Create(criteria, db)...), limit) {
		rows = append(rows, db.Serialize(ca))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	name := fmt.Sprintf("approaches_%s_%s.%s",
		time.Now().UTC().Format("20060102_150405"),
		uuid.NewString()[:8],
		format,
	)
	path := filepath.Join(s.config.OutputDir, name)

	switch format {
	case FormatCSV:
		err = WriteCSV(path, rows)
	case FormatJSON:
		err = WriteJSON(path, rows)
	case FormatXLSX:
		err = utils.CreateApproachWorkbook(path, rows, utils.WorkbookInfo{
			SnapshotID: snapshot.ID.String(),
			Source:     snapshot.Source,
			Criteria:   criteria.Key(),
		})
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write %s export: %w", format, err)
	}

	s.log.Info("export written", "path", path, "format", format, "rows", len(rows))
	return &ExportResult{Path: path, Format: format, Rows: len(rows)}, nil
}

// WriteCSV writes one row per approach under the fixed header.
func WriteCSV(path string, rows []models.ApproachView) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.DatetimeUTC,
			strconv.FormatFloat(row.DistanceAU, 'g', -1, 64),
			strconv.FormatFloat(row.VelocityKmS, 'g', -1, 64),
			row.Designation,
			row.Name,
			row.DiameterKm.String(),
			strconv.FormatBool(row.PotentiallyHazardous),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

// WriteJSON writes the approaches as one indented JSON array.
func WriteJSON(path string, rows []models.ApproachView) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(file)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteArrayStart()
	for i := range rows {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteVal(rows[i])
		if stream.Error != nil {
			return stream.Error
		}
	}
	stream.WriteArrayEnd()
	stream.WriteRaw("\n")

	if err := stream.Flush(); err != nil {
		return err
	}
	return file.Close()
}
