package models

import (
	"math"
	"strconv"
)

// Kilometers is a diameter that may be NaN when unknown. It encodes NaN as
// JSON null and as "nan" in text columns.
type Kilometers float64

func (k Kilometers) IsKnown() bool {
	return !math.IsNaN(float64(k))
}

func (k Kilometers) MarshalJSON() ([]byte, error) {
	if !k.IsKnown() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(k), 'g', -1, 64), nil
}

func (k *Kilometers) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = Kilometers(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*k = Kilometers(f)
	return nil
}

func (k Kilometers) String() string {
	if !k.IsKnown() {
		return "nan"
	}
	return strconv.FormatFloat(float64(k), 'g', -1, 64)
}

// NEOView is the serializable form of a NearEarthObject.
type NEOView struct {
	Designation          string     `json:"designation"`
	Name                 *string    `json:"name"`
	DiameterKm           Kilometers `json:"diameter_km"`
	PotentiallyHazardous bool       `json:"potentially_hazardous"`
}

// ApproachView is the serializable form of a CloseApproach together with the
// fields of its NEO. An unlinked approach carries an empty name, an unknown
// diameter and a false hazard flag, and NEO is nil.
type ApproachView struct {
	DatetimeUTC          string     `json:"datetime_utc"`
	DistanceAU           float64    `json:"distance_au"`
	VelocityKmS          float64    `json:"velocity_km_s"`
	Designation          string     `json:"designation"`
	Name                 string     `json:"name"`
	DiameterKm           Kilometers `json:"diameter_km"`
	PotentiallyHazardous bool       `json:"potentially_hazardous"`
	NEO                  *NEOView   `json:"neo"`
}

// Serialize returns the NEO view of n.
func (n *NearEarthObject) Serialize() NEOView {
	return NEOView{
		Designation:          n.Designation,
		Name:                 n.Name,
		DiameterKm:           Kilometers(n.Diameter),
		PotentiallyHazardous: n.Hazardous,
	}
}

// Serialize returns the approach view of ca. neo is nil for an unlinked approach.
func (ca *CloseApproach) Serialize(neo *NearEarthObject) ApproachView {
	view := ApproachView{
		DatetimeUTC: ca.TimeString(),
		DistanceAU:  ca.Distance,
		VelocityKmS: ca.Velocity,
		Designation: ca.designation,
		DiameterKm:  Kilometers(math.NaN()),
	}
	if neo == nil {
		return view
	}

	neoView := neo.Serialize()
	view.Name = neo.NameOrEmpty()
	view.DiameterKm = neoView.DiameterKm
	view.PotentiallyHazardous = neo.Hazardous
	view.NEO = &neoView
	return view
}
