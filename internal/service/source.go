package service

import (
	"bytes"
	"context"
	"fmt"

	"neolink/internal/clients"
	"neolink/internal/extract"
	"neolink/internal/models"
)

// Source produces the unlinked collections a snapshot is built from.
type Source interface {
	Load(ctx context.Context) ([]models.NearEarthObject, []models.CloseApproach, error)
	Name() string
}

type fileSource struct {
	neoPath      string
	approachPath string
}

// NewFileSource reads the catalogue CSV and a CAD JSON file from disk.
func NewFileSource(neoPath, approachPath string) Source {
	return &fileSource{neoPath: neoPath, approachPath: approachPath}
}

func (s *fileSource) Name() string { return "file" }

func (s *fileSource) Load(ctx context.Context) ([]models.NearEarthObject, []models.CloseApproach, error) {
	neos, err := extract.LoadNEOFile(s.neoPath)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	approaches, err := extract.LoadApproachFile(s.approachPath)
	if err != nil {
		return nil, nil, err
	}
	return neos, approaches, nil
}

type apiSource struct {
	neoPath string
	client  clients.CADClient
	query   clients.CADQuery
}

// NewAPISource reads the catalogue CSV from disk and fetches close approaches
// from the JPL CAD API.
func NewAPISource(neoPath string, client clients.CADClient, query clients.CADQuery) Source {
	return &apiSource{neoPath: neoPath, client: client, query: query}
}

func (s *apiSource) Name() string { return "api" }

func (s *apiSource) Load(ctx context.Context) ([]models.NearEarthObject, []models.CloseApproach, error) {
	neos, err := extract.LoadNEOFile(s.neoPath)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.client.FetchApproaches(ctx, s.query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch close approaches: %w", err)
	}

	approaches, err := extract.LoadApproaches(bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	return neos, approaches, nil
}
