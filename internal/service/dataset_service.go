package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"neolink/internal/filters"
	"neolink/internal/models"
	"neolink/internal/neodb"
	"neolink/internal/repository"
	"neolink/pkg/logger"
)

const queryCachePrefix = "neolink:query:"

type DatasetService interface {
	Reload(ctx context.Context) (*Snapshot, error)
	Current() (*Snapshot, error)
	GetNEO(ctx context.Context, designation string) (*NEODetail, error)
	GetNEOByName(ctx context.Context, name string) (*NEODetail, error)
	QueryApproaches(ctx context.Context, criteria filters.Criteria, limit int) (*ApproachPage, error)
	Stats(ctx context.Context) (*DatasetStats, error)
}

// Snapshot is one loaded and linked data set.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time
	DB       *neodb.NEODatabase
}

type NEODetail struct {
	NEO        models.NEOView        `json:"neo"`
	Approaches []models.ApproachView `json:"approaches"`
}

type ApproachPage struct {
	SnapshotID uuid.UUID             `json:"snapshot_id"`
	Count      int                   `json:"count"`
	Limit      int                   `json:"limit"`
	Cached     bool                  `json:"cached"`
	Items      []models.ApproachView `json:"items"`
}

type DatasetStats struct {
	SnapshotID       uuid.UUID `json:"snapshot_id"`
	Source           string    `json:"source"`
	LoadedAt         time.Time `json:"loaded_at"`
	NEOs             int       `json:"neos"`
	NamedNEOs        int       `json:"named_neos"`
	Approaches       int       `json:"approaches"`
	LinkedApproaches int       `json:"linked_approaches"`
	StoredNEOs       *int64    `json:"stored_neos,omitempty"`
	StoredApproaches *int64    `json:"stored_approaches,omitempty"`
}

type DatasetConfig struct {
	QueryTTL     time.Duration
	DefaultLimit int
	MaxLimit     int
}

type datasetService struct {
	source       Source
	neoRepo      repository.NEORepository
	approachRepo repository.ApproachRepository
	cacheRepo    repository.CacheRepository
	log          *logger.Logger
	config       DatasetConfig

	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
}

// NewDatasetService wires a source with optional SQL mirroring. neoRepo and
// approachRepo may be nil when no database is configured.
func NewDatasetService(
	source Source,
	neoRepo repository.NEORepository,
	approachRepo repository.ApproachRepository,
	cacheRepo repository.CacheRepository,
	log *logger.Logger,
	config DatasetConfig,
) DatasetService {
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = 100
	}
	if config.MaxLimit <= 0 {
		config.MaxLimit = 1000
	}
	if cacheRepo == nil {
		cacheRepo = repository.NewMemoryCacheRepository()
	}

	return &datasetService{
		source:       source,
		neoRepo:      neoRepo,
		approachRepo: approachRepo,
		cacheRepo:    cacheRepo,
		log:          log.With("component", "dataset"),
		config:       config,
	}
}

func (s *datasetService) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	started := time.Now()
	s.log.Info("loading dataset", "source", s.source.Name())

	neos, approaches, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	snapshot := &Snapshot{
		ID:       uuid.New(),
		Source:   s.source.Name(),
		LoadedAt: time.Now().UTC(),
		DB:       neodb.New(neos, approaches),
	}

	if err := s.mirror(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.current.Store(snapshot)

	if err := s.cacheRepo.DeletePattern(ctx, queryCachePrefix+"*"); err != nil {
		s.log.Warn("failed to invalidate query cache", "error", err)
	}

	s.log.Info("dataset loaded",
		"snapshot", snapshot.ID,
		"neos", snapshot.DB.NEOCount(),
		"approaches", snapshot.DB.ApproachCount(),
		"linked", snapshot.DB.LinkedCount(),
		"took", time.Since(started),
	)
	return snapshot, nil
}

// mirror copies the snapshot to SQL when repositories are configured.
func (s *datasetService) mirror(ctx context.Context, snapshot *Snapshot) error {
	if s.neoRepo == nil || s.approachRepo == nil {
		return nil
	}

	db := snapshot.DB
	neoRecords := make([]models.NEORecord, 0, db.NEOCount())
	for _, neo := range db.NEOs() {
		// duplicate designations keep only the object the index resolves to
		if indexed, ok := db.GetNEOByDesignation(neo.Designation); !ok || indexed != neo {
			continue
		}
		neoRecords = append(neoRecords, neo.Record(snapshot.ID))
	}
	if err := s.neoRepo.BulkUpsert(ctx, snapshot.ID, neoRecords); err != nil {
		return err
	}

	approachRecords := make([]models.ApproachRecord, 0, db.ApproachCount())
	for ca := range db.Query() {
		approachRecords = append(approachRecords, ca.Record(snapshot.ID))
	}
	if err := s.approachRepo.ReplaceSnapshot(ctx, snapshot.ID, approachRecords); err != nil {
		return err
	}

	s.log.Debug("snapshot mirrored", "neos", len(neoRecords), "approaches", len(approachRecords))
	return nil
}

func (s *datasetService) Current() (*Snapshot, error) {
	snapshot := s.current.Load()
	if snapshot == nil {
		return nil, ErrNotLoaded
	}
	return snapshot, nil
}

func (s *datasetService) GetNEO(ctx context.Context, designation string) (*NEODetail, error) {
	snapshot, err := s.Current()
	if err != nil {
		return nil, err
	}

	neo, ok := snapshot.DB.GetNEOByDesignation(designation)
	if !ok {
		return nil, fmt.Errorf("neo %q: %w", designation, ErrNotFound)
	}
	return detail(snapshot.DB, neo), nil
}

func (s *datasetService) GetNEOByName(ctx context.Context, name string) (*NEODetail, error) {
	snapshot, err := s.Current()
	if err != nil {
		return nil, err
	}

	neo, ok := snapshot.DB.GetNEOByName(name)
	if !ok {
		return nil, fmt.Errorf("neo named %q: %w", name, ErrNotFound)
	}
	return detail(snapshot.DB, neo), nil
}

func detail(db *neodb.NEODatabase, neo *models.NearEarthObject) *NEODetail {
	approaches := db.ApproachesOf(neo)
	views := make([]models.ApproachView, 0, len(approaches))
	for _, ca := range approaches {
		views = append(views, db.Serialize(ca))
	}
	return &NEODetail{NEO: neo.Serialize(), Approaches: views}
}

func (s *datasetService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.config.DefaultLimit
	}
	if limit > s.config.MaxLimit {
		return s.config.MaxLimit
	}
	return limit
}

func (s *datasetService) QueryApproaches(ctx context.Context, criteria filters.Criteria, limit int) (*ApproachPage, error) {
	snapshot, err := s.Current()
	if err != nil {
		return nil, err
	}
	limit = s.normalizeLimit(limit)

	cacheKey := fmt.Sprintf("%s%s:%s:%d", queryCachePrefix, snapshot.ID, criteria.Key(), limit)

	var cached ApproachPage
	found, err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read query cache", "key", cacheKey, "error", err)
	}
	if found {
		cached.Cached = true
		return &cached, nil
	}

	db := snapshot.DB
	page := &ApproachPage{
		SnapshotID: snapshot.ID,
		Limit:      limit,
		Items:      make([]models.ApproachView, 0),
	}
	for ca := range neodb.Limit(db.Query(filters.Create(criteria, db)...), limit) {
		page.Items = append(page.Items, db.Serialize(ca))
	}
	page.Count = len(page.Items)

	if err := s.cacheRepo.SetJSON(ctx, cacheKey, page, s.config.QueryTTL); err != nil {
		s.log.Warn("failed to cache query", "key", cacheKey, "error", err)
	}

	return page, nil
}

func (s *datasetService) Stats(ctx context.Context) (*DatasetStats, error) {
	snapshot, err := s.Current()
	if err != nil {
		return nil, err
	}

	db := snapshot.DB
	stats := &DatasetStats{
		SnapshotID:       snapshot.ID,
		Source:           snapshot.Source,
		LoadedAt:         snapshot.LoadedAt,
		NEOs:             db.NEOCount(),
		NamedNEOs:        db.NamedCount(),
		Approaches:       db.ApproachCount(),
		LinkedApproaches: db.LinkedCount(),
	}

	if s.neoRepo != nil && s.approachRepo != nil {
		if n, err := s.neoRepo.Count(ctx); err == nil {
			stats.StoredNEOs = &n
		} else {
			s.log.Warn("failed to count stored neos", "error", err)
		}
		if n, err := s.approachRepo.Count(ctx); err == nil {
			stats.StoredApproaches = &n
		} else {
			s.log.Warn("failed to count stored approaches", "error", err)
		}
	}

	return stats, nil
}
