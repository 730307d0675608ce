// Package filters turns user criteria into neodb query filters.
package filters

import (
	"math"
	"time"

	"neolink/internal/models"
	"neolink/internal/neodb"
)

// Resolver finds the NEO linked to an approach. *neodb.NEODatabase implements it.
type Resolver interface {
	NEOOf(ca *models.CloseApproach) (*models.NearEarthObject, bool)
}

// Criteria holds the optional bounds a caller may ask for. Nil fields are ignored.
type Criteria struct {
	Date        *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
	DistanceMin *float64
	DistanceMax *float64
	VelocityMin *float64
	VelocityMax *float64
	DiameterMin *float64
	DiameterMax *float64
	Hazardous   *bool
}

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return len(Create(c, nil)) == 0
}

// Create builds the filters for c in a fixed order: dates, distance,
// velocity, diameter, hazard. Diameter and hazard filters reject unlinked
// approaches.
func Create(c Criteria, resolver Resolver) []neodb.Filter {
	var out []neodb.Filter

	if c.Date != nil {
		day := truncateDay(*c.Date)
		out = append(out, func(ca *models.CloseApproach) bool {
			return truncateDay(ca.Time).Equal(day)
		})
	}
	if c.StartDate != nil {
		start := truncateDay(*c.StartDate)
		out = append(out, func(ca *models.CloseApproach) bool {
			return !truncateDay(ca.Time).Before(start)
		})
	}
	if c.EndDate != nil {
		end := truncateDay(*c.EndDate)
		out = append(out, func(ca *models.CloseApproach) bool {
			return !truncateDay(ca.Time).After(end)
		})
	}

	out = appendRange(out, c.DistanceMin, c.DistanceMax, func(ca *models.CloseApproach) float64 {
		return ca.Distance
	})
	out = appendRange(out, c.VelocityMin, c.VelocityMax, func(ca *models.CloseApproach) float64 {
		return ca.Velocity
	})

	diameter := func(ca *models.CloseApproach) float64 {
		if resolver == nil {
			return math.NaN()
		}
		neo, ok := resolver.NEOOf(ca)
		if !ok {
			return math.NaN()
		}
		return neo.Diameter
	}
	out = appendRange(out, c.DiameterMin, c.DiameterMax, diameter)

	if c.Hazardous != nil {
		want := *c.Hazardous
		out = append(out, func(ca *models.CloseApproach) bool {
			if resolver == nil {
				return false
			}
			neo, ok := resolver.NEOOf(ca)
			return ok && neo.Hazardous == want
		})
	}

	return out
}

// appendRange adds inclusive bound checks on value. NaN never satisfies a bound.
func appendRange(out []neodb.Filter, lo, hi *float64, value func(*models.CloseApproach) float64) []neodb.Filter {
	if lo != nil {
		min := *lo
		out = append(out, func(ca *models.CloseApproach) bool {
			return value(ca) >= min
		})
	}
	if hi != nil {
		max := *hi
		out = append(out, func(ca *models.CloseApproach) bool {
			return value(ca) <= max
		})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
