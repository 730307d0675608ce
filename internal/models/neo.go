package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NearEarthObject is one entry of the NEO catalogue.
//
// Approaches are not held directly: the owning neodb.NEODatabase records the
// indexes of this object's close approaches while linking.
type NearEarthObject struct {
	ID          string
	Designation string
	Name        *string
	Diameter    float64
	Hazardous   bool

	approaches []int
}

type neoSetter func(neo *NearEarthObject, value string) error

var neoSetters = map[string]neoSetter{
	NEOIDField: func(neo *NearEarthObject, value string) error {
		neo.ID = value
		return nil
	},
	NEOPrimaryDesignationField: func(neo *NearEarthObject, value string) error {
		neo.Designation = value
		return nil
	},
	NEONameField: func(neo *NearEarthObject, value string) error {
		neo.Name = normalizeName(value)
		return nil
	},
	NEODiameterField: func(neo *NearEarthObject, value string) error {
		if value == "" || strings.EqualFold(strings.TrimSpace(value), "nan") {
			neo.Diameter = math.NaN()
			return nil
		}
		d, err := parseFloat(NEODiameterField, value)
		if err != nil {
			return err
		}
		neo.Diameter = d
		return nil
	},
	NEOHazardField: func(neo *NearEarthObject, value string) error {
		neo.Hazardous = strings.ToUpper(value) == "Y"
		return nil
	},
}

// NewNearEarthObject builds an object from raw (value, column) pairs.
// Unknown columns are ignored. Diameter stays NaN until a value is seen.
func NewNearEarthObject(fields []Field) (NearEarthObject, error) {
	neo := NearEarthObject{Diameter: math.NaN()}

	for _, f := range fields {
		set, ok := neoSetters[f.Name]
		if !ok {
			continue
		}
		if err := set(&neo, f.Value); err != nil {
			return NearEarthObject{}, err
		}
	}

	return neo, nil
}

// normalizeName strips surrounding quotes, then surrounding whitespace. Quotes
// padded by whitespace are stripped too.
func normalizeName(raw string) *string {
	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	if name == "" {
		return nil
	}
	return &name
}

// NameOrEmpty returns the name, or "" when the object has none.
func (n *NearEarthObject) NameOrEmpty() string {
	if n.Name == nil {
		return ""
	}
	return *n.Name
}

// Fullname is "designation (name)" or just the designation.
func (n *NearEarthObject) Fullname() string {
	if n.Name == nil {
		return n.Designation
	}
	return fmt.Sprintf("%s (%s)", n.Designation, *n.Name)
}

// ApproachIndexes returns the store indexes of the linked close approaches.
func (n *NearEarthObject) ApproachIndexes() []int {
	return n.approaches
}

func (n *NearEarthObject) String() string {
	hazard := "is not"
	if n.Hazardous {
		hazard = "is"
	}
	return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s potentially hazardous",
		n.Fullname(), n.Diameter, hazard)
}

// parseFloat accepts finite numbers only.
func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %s: %v", ErrParse, field, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: field %s: non-finite value %q", ErrParse, field, value)
	}
	return f, nil
}
