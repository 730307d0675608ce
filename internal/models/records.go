package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NEORecord is the SQL mirror of a NearEarthObject.
type NEORecord struct {
	ID          uint           `gorm:"primaryKey"`
	Designation string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name        *string        `gorm:"type:varchar(128);index"`
	DiameterKm  *float64       `gorm:"column:diameter_km"`
	Hazardous   bool           `gorm:"not null;default:false"`
	SnapshotID  uuid.UUID      `gorm:"type:varchar(36);index;not null"`
	Raw         datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

// ApproachRecord is the SQL mirror of a CloseApproach.
type ApproachRecord struct {
	ID                uint      `gorm:"primaryKey"`
	SnapshotID        uuid.UUID `gorm:"type:varchar(36);index;not null"`
	Designation       string    `gorm:"type:varchar(64);index;not null"`
	OrbitID           string    `gorm:"type:varchar(32)"`
	ApproachAt        time.Time `gorm:"index;not null"`
	JulianDate        float64   `gorm:"not null"`
	DistanceAU        float64   `gorm:"not null"`
	DistanceMinAU     float64   `gorm:"not null"`
	DistanceMaxAU     float64   `gorm:"not null"`
	VelocityKmS       float64   `gorm:"not null"`
	VelocityInfKmS    float64   `gorm:"not null"`
	TimeUncertainty   string    `gorm:"type:varchar(32)"`
	AbsoluteMagnitude float64
	Linked            bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

// Record converts n into its SQL row for snapshot.
func (n *NearEarthObject) Record(snapshot uuid.UUID) NEORecord {
	view := n.Serialize()
	raw, _ := json.Marshal(view)

	rec := NEORecord{
		Designation: n.Designation,
		Name:        n.Name,
		Hazardous:   n.Hazardous,
		SnapshotID:  snapshot,
		Raw:         raw,
	}
	if view.DiameterKm.IsKnown() {
		d := n.Diameter
		rec.DiameterKm = &d
	}
	return rec
}

// Record converts ca into its SQL row for snapshot.
func (ca *CloseApproach) Record(snapshot uuid.UUID) ApproachRecord {
	_, linked := ca.NEOIndex()
	return ApproachRecord{
		SnapshotID:        snapshot,
		Designation:       ca.designation,
		OrbitID:           ca.OrbitID,
		ApproachAt:        ca.Time,
		JulianDate:        ca.JulianDate,
		DistanceAU:        ca.Distance,
		DistanceMinAU:     ca.DistanceMin,
		DistanceMaxAU:     ca.DistanceMax,
		VelocityKmS:       ca.Velocity,
		VelocityInfKmS:    ca.VelocityToMasslessBody,
		TimeUncertainty:   ca.TimeUncertainty,
		AbsoluteMagnitude: ca.Magnitude,
		Linked:            linked,
	}
}
