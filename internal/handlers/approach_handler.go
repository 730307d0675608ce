package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"neolink/internal/filters"
	"neolink/internal/service"

	"github.com/gin-gonic/gin"
)

// ApproachQuery is the query string accepted by the approach endpoints.
type ApproachQuery struct {
	Date        *time.Time `form:"date" time_format:"2006-01-02" time_utc:"1"`
	StartDate   *time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate     *time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
	DistanceMin *float64   `form:"distance_min" binding:"omitempty,gte=0"`
	DistanceMax *float64   `form:"distance_max" binding:"omitempty,gte=0"`
	VelocityMin *float64   `form:"velocity_min" binding:"omitempty,gte=0"`
	VelocityMax *float64   `form:"velocity_max" binding:"omitempty,gte=0"`
	DiameterMin *float64   `form:"diameter_min" binding:"omitempty,gte=0"`
	DiameterMax *float64   `form:"diameter_max" binding:"omitempty,gte=0"`
	Hazardous   *bool      `form:"hazardous"`
	Limit       int        `form:"limit" binding:"omitempty,gte=0"`
	Format      string     `form:"format"`
}

// Criteria converts q to filter criteria. Empty date parameters are ignored.
func (q ApproachQuery) Criteria() filters.Criteria {
	date := func(t *time.Time) *time.Time {
		if t == nil || t.IsZero() {
			return nil
		}
		return t
	}

	return filters.Criteria{
		Date:        date(q.Date),
		StartDate:   date(q.StartDate),
		EndDate:     date(q.EndDate),
		DistanceMin: q.DistanceMin,
		DistanceMax: q.DistanceMax,
		VelocityMin: q.VelocityMin,
		VelocityMax: q.VelocityMax,
		DiameterMin: q.DiameterMin,
		DiameterMax: q.DiameterMax,
		Hazardous:   q.Hazardous,
	}
}

type ApproachHandler struct {
	dataset service.DatasetService
	export  service.ExportService
}

func NewApproachHandler(dataset service.DatasetService, export service.ExportService) *ApproachHandler {
	return &ApproachHandler{dataset: dataset, export: export}
}

func bindApproachQuery(c *gin.Context) (ApproachQuery, bool) {
	var q ApproachQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query parameters",
			"message": err.Error(),
		})
		return q, false
	}
	return q, true
}

// QueryApproaches serves GET /approaches.
func (h *ApproachHandler) QueryApproaches(c *gin.Context) {
	ctx := c.Request.Context()

	q, ok := bindApproachQuery(c)
	if !ok {
		return
	}

	page, err := h.dataset.QueryApproaches(ctx, q.Criteria(), q.Limit)
	if err != nil {
		respondError(c, err, "failed to query approaches")
		return
	}

	c.JSON(http.StatusOK, page)
}

// ExportApproaches serves GET /approaches/export and sends the written file.
func (h *ApproachHandler) ExportApproaches(c *gin.Context) {
	ctx := c.Request.Context()

	q, ok := bindApproachQuery(c)
	if !ok {
		return
	}
	if q.Format == "" {
		q.Format = string(service.FormatCSV)
	}

	format, err := service.ParseExportFormat(q.Format)
	if err != nil {
		respondError(c, err, "unsupported format, use 'csv', 'json' or 'xlsx'")
		return
	}

	result, err := h.export.Export(ctx, format, q.Criteria(), q.Limit)
	if err != nil {
		respondError(c, err, "failed to export approaches")
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.FileAttachment(result.Path, filepath.Base(result.Path))
}
