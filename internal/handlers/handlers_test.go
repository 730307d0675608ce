package handlers

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neolink/internal/repository"
	"neolink/internal/service"
	"neolink/pkg/logger"

	"github.com/gin-gonic/gin"
)

const neoCSV = `id,pdes,name,pha,diameter
a0000433,433,Eros,N,16.84
a0099942,99942,Apophis,Y,0.37
bK20A00B,2020 AB,,N,
`

const cadJSON = `{
  "count": "4",
  "fields": ["des", "orbit_id", "jd", "cd", "dist", "dist_min", "dist_max", "v_rel", "v_inf", "t_sigma_f", "h"],
  "data": [
    ["433", "659", "2458849.75", "2020-Jan-01 06:00", "0.15", "0.149", "0.151", "5.5", "5.49", "< 00:01", "10.4"],
    ["99942", "206", "2462240.407638889", "2029-Apr-13 21:46", "0.000254", "0.000254", "0.000254", "7.42", "5.84", "< 00:01", null],
    ["2020 AB", "3", "2459034.923611111", "2020-Jul-04 10:10", "0.03", "0.029", null, null, null, "00:12", "25.1"],
    ["unknown", "1", "2462562.5", "2030-Mar-01 00:00", "0.4", "0.39", "0.41", "12.0", "11.9", "00:01", "22"]
  ]
}`

type testServer struct {
	router  *gin.Engine
	dataset service.DatasetService
}

func newTestServer(t *testing.T, load bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	neoPath := filepath.Join(dir, "neos.csv")
	cadPath := filepath.Join(dir, "cad.json")
	require.NoError(t, os.WriteFile(neoPath, []byte(neoCSV), 0o644))
	require.NoError(t, os.WriteFile(cadPath, []byte(cadJSON), 0o644))

	log := logger.Nop()
	dataset := service.NewDatasetService(
		service.NewFileSource(neoPath, cadPath),
		nil, nil,
		repository.NewMemoryCacheRepository(),
		log,
		service.DatasetConfig{QueryTTL: time.Minute},
	)
	if load {
		_, err := dataset.Reload(context.Background())
		require.NoError(t, err)
	}
	export := service.NewExportService(dataset, log, service.ExportConfig{OutputDir: filepath.Join(dir, "exports")})

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"),
		NewNEOHandler(dataset),
		NewApproachHandler(dataset, export),
		NewSystemHandler(dataset, nil, nil, gin.H{"dataset_enabled": false}),
		true,
	)
	return &testServer{router: r, dataset: dataset}
}

func (s *testServer) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetNEO(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/neos/433")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "433", body["designation"])
	assert.Equal(t, "Eros", body["name"])
	assert.Equal(t, 16.84, body["diameter_km"])

	w = s.do(t, http.MethodGet, "/api/v1/neos/2020%20AB")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Nil(t, body["name"])
	assert.Nil(t, body["diameter_km"])

	w = s.do(t, http.MethodGet, "/api/v1/neos/eros")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFindNEOByName(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/neos?name=Apophis")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "99942", decode(t, w)["designation"])

	w = s.do(t, http.MethodGet, "/api/v1/neos?name=apophis")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/neos")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNEOApproaches(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/neos/99942/approaches")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["count"])

	approaches := body["approaches"].([]any)
	first := approaches[0].(map[string]any)
	assert.Equal(t, "2029-Apr-13 21:46", first["datetime_utc"])
	assert.Equal(t, true, first["potentially_hazardous"])
}

func TestQueryApproaches(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/approaches")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decode(t, w)["count"])

	w = s.do(t, http.MethodGet, "/api/v1/approaches?date=2020-01-01")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.EqualValues(t, 1, body["count"])
	item := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "433", item["designation"])

	w = s.do(t, http.MethodGet, "/api/v1/approaches?start_date=2020-06-01&end_date=2029-12-31&hazardous=false")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	require.EqualValues(t, 1, body["count"])
	item = body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "2020 AB", item["designation"])

	w = s.do(t, http.MethodGet, "/api/v1/approaches?diameter_min=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = s.do(t, http.MethodGet, "/api/v1/approaches?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["count"])
}

func TestQueryApproachesRejectsBadInput(t *testing.T) {
	s := newTestServer(t, true)

	for _, target := range []string{
		"/api/v1/approaches?date=01/01/2020",
		"/api/v1/approaches?distance_max=far",
		"/api/v1/approaches?velocity_min=-1",
		"/api/v1/approaches?hazardous=maybe",
		"/api/v1/approaches?limit=-5",
	} {
		w := s.do(t, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestNotLoaded(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/v1/approaches")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])
}

func TestReloadAndStats(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/v1/dataset/reload")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decode(t, w)["approaches"])

	w = s.do(t, http.MethodGet, "/api/v1/system/stats")
	require.Equal(t, http.StatusOK, w.Code)
	dataset := decode(t, w)["dataset"].(map[string]any)
	assert.EqualValues(t, 3, dataset["neos"])
	assert.EqualValues(t, 3, dataset["linked_approaches"])
	assert.Equal(t, "file", dataset["source"])

	w = s.do(t, http.MethodGet, "/api/v1/health")
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestExportApproaches(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/v1/approaches/export?format=csv&distance_max=0.2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "datetime_utc", records[0][0])

	w = s.do(t, http.MethodGet, "/api/v1/approaches/export?format=pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
