package models

import (
	"fmt"
	"time"
)

// CloseApproach is one close pass of a NEO by Earth.
//
// The NEO is referenced by its designation until the store links it, after
// which NEOIndex resolves to the object's position in the store.
type CloseApproach struct {
	OrbitID                string
	Time                   time.Time
	JulianDate             float64
	Distance               float64
	DistanceMin            float64
	DistanceMax            float64
	Velocity               float64
	VelocityToMasslessBody float64
	TimeUncertainty        string
	Magnitude              float64

	designation string
	neo         int // store index + 1, zero while unlinked
}

type approachSetter func(ca *CloseApproach, value string) error

// optionalFloat maps an empty value to 0.0 and parses anything else.
func optionalFloat(field string, dst func(*CloseApproach) *float64) approachSetter {
	return func(ca *CloseApproach, value string) error {
		if value == "" {
			*dst(ca) = 0.0
			return nil
		}
		f, err := parseFloat(field, value)
		if err != nil {
			return err
		}
		*dst(ca) = f
		return nil
	}
}

func requiredFloat(field string, dst func(*CloseApproach) *float64) approachSetter {
	return func(ca *CloseApproach, value string) error {
		f, err := parseFloat(field, value)
		if err != nil {
			return err
		}
		*dst(ca) = f
		return nil
	}
}

var approachSetters = map[string]approachSetter{
	CAPrimaryDesignationField: func(ca *CloseApproach, value string) error {
		ca.designation = value
		return nil
	},
	CAOrbitIDField: func(ca *CloseApproach, value string) error {
		ca.OrbitID = value
		return nil
	},
	CATimeUncertaintyField: func(ca *CloseApproach, value string) error {
		ca.TimeUncertainty = value
		return nil
	},
	CATimeCDField: func(ca *CloseApproach, value string) error {
		t, err := ParseCalendarDate(value)
		if err != nil {
			return err
		}
		ca.Time = t
		return nil
	},
	CATimeJDField:      requiredFloat(CATimeJDField, func(ca *CloseApproach) *float64 { return &ca.JulianDate }),
	CADistanceField:    requiredFloat(CADistanceField, func(ca *CloseApproach) *float64 { return &ca.Distance }),
	CADistanceMinField: requiredFloat(CADistanceMinField, func(ca *CloseApproach) *float64 { return &ca.DistanceMin }),
	CADistanceMaxField: optionalFloat(CADistanceMaxField, func(ca *CloseApproach) *float64 { return &ca.DistanceMax }),
	CAVelocityRelField: optionalFloat(CAVelocityRelField, func(ca *CloseApproach) *float64 { return &ca.Velocity }),
	CAVelocityInfField: optionalFloat(CAVelocityInfField, func(ca *CloseApproach) *float64 {
		return &ca.VelocityToMasslessBody
	}),
	CAAbsoluteMagnitudeField: optionalFloat(CAAbsoluteMagnitudeField, func(ca *CloseApproach) *float64 {
		return &ca.Magnitude
	}),
}

// NewCloseApproach builds an approach from raw (value, field) pairs.
// Julian date, distance and minimum distance must parse; the remaining
// numeric fields fall back to 0.0 when empty. Velocity is 0.0 when the
// record has no v_rel field at all.
func NewCloseApproach(fields []Field) (CloseApproach, error) {
	var ca CloseApproach

	for _, f := range fields {
		set, ok := approachSetters[f.Name]
		if !ok {
			continue
		}
		if err := set(&ca, f.Value); err != nil {
			return CloseApproach{}, err
		}
	}

	return ca, nil
}

// Designation is the primary designation of the approaching NEO.
func (ca *CloseApproach) Designation() string {
	return ca.designation
}

// NEOIndex returns the store index of the linked NEO.
func (ca *CloseApproach) NEOIndex() (int, bool) {
	if ca.neo == 0 {
		return 0, false
	}
	return ca.neo - 1, true
}

// Link connects ca, stored at approachIdx, to neo, stored at neoIdx. An
// approach is linked at most once: Link reports false and changes nothing
// when ca already has a NEO.
func Link(neo *NearEarthObject, neoIdx int, ca *CloseApproach, approachIdx int) bool {
	if ca.neo != 0 {
		return false
	}
	ca.neo = neoIdx + 1
	neo.approaches = append(neo.approaches, approachIdx)
	return true
}

// TimeString renders the approach time without seconds.
func (ca *CloseApproach) TimeString() string {
	return FormatCalendarDate(ca.Time)
}

func (ca *CloseApproach) String() string {
	return fmt.Sprintf("At %s, %s approaches Earth at a distance of %.2f au and a velocity of %.2f km/s",
		ca.TimeString(), ca.designation, ca.Distance, ca.Velocity)
}
