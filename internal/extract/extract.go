// Package extract reads the NEO catalogue (CSV) and close-approach data (CAD JSON).
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"neolink/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadNEOs reads a CSV with a header row and builds one NEO per record.
func LoadNEOs(r io.Reader) ([]models.NearEarthObject, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	var neos []models.NearEarthObject
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		neo, err := models.NewNearEarthObject(models.Zip(record, header))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		neos = append(neos, neo)
	}

	return neos, nil
}

// cadDocument is the SBDB close-approach API payload.
type cadDocument struct {
	Fields []string    `json:"fields"`
	Data   [][]*string `json:"data"`
}

// LoadApproaches reads a CAD JSON document. Null cells become empty values.
func LoadApproaches(r io.Reader) ([]models.CloseApproach, error) {
	var doc cadDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode close approach data: %w", err)
	}

	approaches := make([]models.CloseApproach, 0, len(doc.Data))
	values := make([]string, len(doc.Fields))
	for i, row := range doc.Data {
		values = values[:0]
		for _, cell := range row {
			if cell == nil {
				values = append(values, "")
				continue
			}
			values = append(values, *cell)
		}

		ca, err := models.NewCloseApproach(models.Zip(values, doc.Fields))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		approaches = append(approaches, ca)
	}

	return approaches, nil
}

// LoadNEOFile opens path and calls LoadNEOs.
func LoadNEOFile(path string) ([]models.NearEarthObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open neo file: %w", err)
	}
	defer f.Close()

	return LoadNEOs(f)
}

// LoadApproachFile opens path and calls LoadApproaches.
func LoadApproachFile(path string) ([]models.CloseApproach, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open close approach file: %w", err)
	}
	defer f.Close()

	return LoadApproaches(f)
}
