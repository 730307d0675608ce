// Package neodb holds the linked, read-only view of a loaded NEO data set.
package neodb

import (
	"neolink/internal/models"
)

// NEODatabase owns a set of NEOs and close approaches linked to each other.
//
// It is built once per load and never mutated afterwards, so it is safe to
// share between goroutines for reading.
type NEODatabase struct {
	neos       []models.NearEarthObject
	approaches []models.CloseApproach

	byDesignation map[string]int
	byName        map[string]int
	linked        int
}

// New takes ownership of unlinked NEOs and approaches and links them.
// An approach whose designation matches no NEO stays unlinked.
func New(neos []models.NearEarthObject, approaches []models.CloseApproach) *NEODatabase {
	db := &NEODatabase{
		neos:          neos,
		approaches:    approaches,
		byDesignation: make(map[string]int, len(neos)),
		byName:        make(map[string]int),
	}

	for i := range db.neos {
		db.byDesignation[db.neos[i].Designation] = i
	}

	for i := range db.neos {
		if name := db.neos[i].Name; name != nil && *name != "" {
			db.byName[*name] = i
		}
	}

	for i := range db.approaches {
		ca := &db.approaches[i]
		idx, ok := db.byDesignation[ca.Designation()]
		if !ok {
			continue
		}
		if models.Link(&db.neos[idx], idx, ca, i) {
			db.linked++
		}
	}

	return db
}

// GetNEOByDesignation finds a NEO by exact primary designation.
func (db *NEODatabase) GetNEOByDesignation(designation string) (*models.NearEarthObject, bool) {
	idx, ok := db.byDesignation[designation]
	if !ok {
		return nil, false
	}
	return &db.neos[idx], true
}

// GetNEOByName finds a NEO by exact name. The empty name never matches.
func (db *NEODatabase) GetNEOByName(name string) (*models.NearEarthObject, bool) {
	if name == "" {
		return nil, false
	}
	idx, ok := db.byName[name]
	if !ok {
		return nil, false
	}
	return &db.neos[idx], true
}

// NEOOf resolves the NEO an approach was linked to.
func (db *NEODatabase) NEOOf(ca *models.CloseApproach) (*models.NearEarthObject, bool) {
	idx, ok := ca.NEOIndex()
	if !ok || idx >= len(db.neos) {
		return nil, false
	}
	return &db.neos[idx], true
}

// ApproachesOf returns the approaches linked to neo, in load order.
func (db *NEODatabase) ApproachesOf(neo *models.NearEarthObject) []*models.CloseApproach {
	indexes := neo.ApproachIndexes()
	out := make([]*models.CloseApproach, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, &db.approaches[i])
	}
	return out
}

// Serialize returns the output view of ca, filled from its NEO when linked.
func (db *NEODatabase) Serialize(ca *models.CloseApproach) models.ApproachView {
	neo, _ := db.NEOOf(ca)
	return ca.Serialize(neo)
}

// NEOs returns every NEO in load order.
func (db *NEODatabase) NEOs() []*models.NearEarthObject {
	out := make([]*models.NearEarthObject, 0, len(db.neos))
	for i := range db.neos {
		out = append(out, &db.neos[i])
	}
	return out
}

func (db *NEODatabase) NEOCount() int      { return len(db.neos) }
func (db *NEODatabase) ApproachCount() int { return len(db.approaches) }
func (db *NEODatabase) LinkedCount() int   { return db.linked }
func (db *NEODatabase) NamedCount() int    { return len(db.byName) }
