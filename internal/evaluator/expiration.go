package evaluator

import (
	"sort"
	"time"
)

const (
	// ExpiringSoonDays is the inclusive upper bound of the expiring-soon bucket.
	ExpiringSoonDays = 30
	// ExpiringLaterDays is the inclusive upper bound of the expiring-later bucket.
	ExpiringLaterDays = 90
)

// ExpirationBucket names the alert bucket a dated record falls into.
type ExpirationBucket string

const (
	BucketExpired       ExpirationBucket = "expired"
	BucketExpiringSoon  ExpirationBucket = "expiring_soon"
	BucketExpiringLater ExpirationBucket = "expiring_later"
	BucketActive        ExpirationBucket = "active"
)

// Dated wraps a record with its computed distance to expiry. DaysUntil is nil
// when the record never expires.
type Dated[T any] struct {
	Item       T          `json:"item"`
	Expiration *time.Time `json:"expiration_date,omitempty"`
	DaysUntil  *int       `json:"days_until,omitempty"`
}

// ExpirationBuckets partitions records. Expired is most-overdue first; the
// expiring buckets are soonest first.
type ExpirationBuckets[T any] struct {
	Expired       []Dated[T] `json:"expired"`
	ExpiringSoon  []Dated[T] `json:"expiring_soon"`
	ExpiringLater []Dated[T] `json:"expiring_later"`
	Active        []Dated[T] `json:"active"`
}

// Concerns counts the records that need attention.
func (b ExpirationBuckets[T]) Concerns() int {
	return len(b.Expired) + len(b.ExpiringSoon) + len(b.ExpiringLater)
}

// midnight rebuilds the calendar date of t, read in its own location, as
// midnight in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysUntil returns whole calendar days from now to exp. exp is a date-only
// value and is read in its own location (DATE columns arrive as UTC midnight);
// now is read in its location. A record expiring today yields 0, yesterday -1.
func DaysUntil(exp, now time.Time) int {
	loc := now.Location()
	from := midnight(now, loc)
	to := midnight(exp, loc)
	// Dates in loc are midnight-aligned; rounding absorbs DST shifts of an hour.
	return int(to.Sub(from).Round(24*time.Hour) / (24 * time.Hour))
}

// IsExpired reports whether exp lies on a calendar day before now. A nil
// expiration never expires.
func IsExpired(exp *time.Time, now time.Time) bool {
	if exp == nil {
		return false
	}
	return DaysUntil(*exp, now) < 0
}

// Classify places a single expiration date into its bucket.
func Classify(exp *time.Time, now time.Time) ExpirationBucket {
	if exp == nil {
		return BucketActive
	}
	days := DaysUntil(*exp, now)
	switch {
	case days < 0:
		return BucketExpired
	case days <= ExpiringSoonDays:
		return BucketExpiringSoon
	case days <= ExpiringLaterDays:
		return BucketExpiringLater
	default:
		return BucketActive
	}
}

// BucketExpirations partitions items by the date returned from expiry.
func BucketExpirations[T any](items []T, expiry func(T) *time.Time, now time.Time) ExpirationBuckets[T] {
	buckets := ExpirationBuckets[T]{
		Expired:       []Dated[T]{},
		ExpiringSoon:  []Dated[T]{},
		ExpiringLater: []Dated[T]{},
		Active:        []Dated[T]{},
	}

	for _, item := range items {
		exp := expiry(item)
		dated := Dated[T]{Item: item, Expiration: exp}
		if exp != nil {
			days := DaysUntil(*exp, now)
			dated.DaysUntil = &days
		}

		switch Classify(exp, now) {
		case BucketExpired:
			buckets.Expired = append(buckets.Expired, dated)
		case BucketExpiringSoon:
			buckets.ExpiringSoon = append(buckets.ExpiringSoon, dated)
		case BucketExpiringLater:
			buckets.ExpiringLater = append(buckets.ExpiringLater, dated)
		default:
			buckets.Active = append(buckets.Active, dated)
		}
	}

	// Ascending expiration is both "most overdue first" and "soonest first".
	sortByExpiration(buckets.Expired)
	sortByExpiration(buckets.ExpiringSoon)
	sortByExpiration(buckets.ExpiringLater)

	return buckets
}

func sortByExpiration[T any](records []Dated[T]) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Expiration.Before(*records[j].Expiration)
	})
}
