package filters

import (
	"strconv"
	"strings"
	"time"
)

// Key renders c as a stable string, used for cache keys.
func (c Criteria) Key() string {
	var parts []string

	addDate := func(name string, t *time.Time) {
		if t != nil {
			parts = append(parts, name+"="+t.UTC().Format(time.DateOnly))
		}
	}
	addFloat := func(name string, f *float64) {
		if f != nil {
			parts = append(parts, name+"="+strconv.FormatFloat(*f, 'g', -1, 64))
		}
	}

	addDate("date", c.Date)
	addDate("start", c.StartDate)
	addDate("end", c.EndDate)
	addFloat("dist_min", c.DistanceMin)
	addFloat("dist_max", c.DistanceMax)
	addFloat("v_min", c.VelocityMin)
	addFloat("v_max", c.VelocityMax)
	addFloat("diam_min", c.DiameterMin)
	addFloat("diam_max", c.DiameterMax)
	if c.Hazardous != nil {
		parts = append(parts, "hazardous="+strconv.FormatBool(*c.Hazardous))
	}

	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, ";")
}
