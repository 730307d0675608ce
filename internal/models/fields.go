package models

// Column names used by the NEO catalogue (neos.csv).
const (
	NEOIDField                 = "id"
	NEOPrimaryDesignationField = "pdes"
	NEONameField               = "name"
	NEODiameterField           = "diameter"
	NEOHazardField             = "pha"
)

// Field names used by the close-approach data set (cad.json).
const (
	CAPrimaryDesignationField = "des"
	CAOrbitIDField            = "orbit_id"
	CATimeJDField             = "jd"
	CATimeCDField             = "cd"
	CADistanceField           = "dist"
	CADistanceMinField        = "dist_min"
	CADistanceMaxField        = "dist_max"
	CAVelocityRelField        = "v_rel"
	CAVelocityInfField        = "v_inf"
	CATimeUncertaintyField    = "t_sigma_f"
	CAAbsoluteMagnitudeField  = "h"
)

// Field is one raw value together with the column it came from.
type Field struct {
	Value string
	Name  string
}

// Zip pairs values with column names by position. Extra entries on the
// longer side are dropped.
func Zip(values, names []string) []Field {
	n := len(values)
	if len(names) < n {
		n = len(names)
	}

	fields := make([]Field, 0, n)
	for i := 0; i < n; i++ {
		fields = append(fields, Field{Value: values[i], Name: names[i]})
	}
	return fields
}
