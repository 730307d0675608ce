package neodb

import (
	"iter"

	"neolink/internal/models"
)

// Filter selects close approaches.
type Filter func(*models.CloseApproach) bool

// Query streams the approaches matching every filter, in load order.
// Filters run in the given order and stop at the first that rejects.
// With no filters every approach is yielded once.
func (db *NEODatabase) Query(filters ...Filter) iter.Seq[*models.CloseApproach] {
	return func(yield func(*models.CloseApproach) bool) {
		for i := range db.approaches {
			ca := &db.approaches[i]
			if !matchAll(ca, filters) {
				continue
			}
			if !yield(ca) {
				return
			}
		}
	}
}

func matchAll(ca *models.CloseApproach, filters []Filter) bool {
	for _, f := range filters {
		if !f(ca) {
			return false
		}
	}
	return true
}

// Limit yields at most n elements of seq. n <= 0 means no limit.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n <= 0 {
		return seq
	}
	return func(yield func(T) bool) {
		count := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
