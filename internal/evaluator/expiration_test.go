package evaluator

import (
	"testing"
	"time"
)

type credential struct {
	name string
	exp  *time.Time
}

func credentialExpiry(c credential) *time.Time { return c.exp }

func daysFrom(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

var reference = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

func TestBucketExpirations(t *testing.T) {
	t.Parallel()

	now := reference
	items := []credential{
		{name: "cpr", exp: daysFrom(now, -1)},
		{name: "first-aid", exp: daysFrom(now, 15)},
		{name: "background", exp: daysFrom(now, 45)},
		{name: "license", exp: nil},
		{name: "food-handler", exp: daysFrom(now, 200)},
	}

	b := BucketExpirations(items, credentialExpiry, now)

	assertNames(t, "expired", b.Expired, "cpr")
	assertNames(t, "expiring soon", b.ExpiringSoon, "first-aid")
	assertNames(t, "expiring later", b.ExpiringLater, "background")
	assertNames(t, "active", b.Active, "license", "food-handler")
	if got := b.Concerns(); got != 3 {
		t.Fatalf("Concerns() = %d, want 3", got)
	}
	if d := b.Expired[0].DaysUntil; d == nil || *d != -1 {
		t.Fatalf("expired DaysUntil = %v, want -1", d)
	}
	if b.Active[0].DaysUntil != nil {
		t.Fatal("undated record has DaysUntil")
	}
}

func TestBucketExpirationsSortOrder(t *testing.T) {
	t.Parallel()

	now := reference
	items := []credential{
		{name: "overdue-2", exp: daysFrom(now, -2)},
		{name: "overdue-40", exp: daysFrom(now, -40)},
		{name: "soon-20", exp: daysFrom(now, 20)},
		{name: "soon-3", exp: daysFrom(now, 3)},
		{name: "later-80", exp: daysFrom(now, 80)},
		{name: "later-31", exp: daysFrom(now, 31)},
	}

	b := BucketExpirations(items, credentialExpiry, now)

	assertNames(t, "expired", b.Expired, "overdue-40", "overdue-2")
	assertNames(t, "expiring soon", b.ExpiringSoon, "soon-3", "soon-20")
	assertNames(t, "expiring later", b.ExpiringLater, "later-31", "later-80")
}

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	now := reference
	tests := []struct {
		days int
		want ExpirationBucket
	}{
		{days: -1, want: BucketExpired},
		{days: 0, want: BucketExpiringSoon},
		{days: 30, want: BucketExpiringSoon},
		{days: 31, want: BucketExpiringLater},
		{days: 90, want: BucketExpiringLater},
		{days: 91, want: BucketActive},
	}
	for _, tt := range tests {
		if got := Classify(daysFrom(now, tt.days), now); got != tt.want {
			t.Fatalf("Classify(+%d days) = %q, want %q", tt.days, got, tt.want)
		}
	}
	if got := Classify(nil, now); got != BucketActive {
		t.Fatalf("Classify(nil) = %q, want %q", got, BucketActive)
	}
}

func TestExpiringTodayIsNotExpiredRegardlessOfTimeOfDay(t *testing.T) {
	t.Parallel()

	// A DATE column arrives as UTC midnight; late in the day it is still valid.
	exp := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	for _, hour := range []int{0, 9, 23} {
		now := time.Date(2026, time.March, 10, hour, 59, 0, 0, time.UTC)
		if IsExpired(&exp, now) {
			t.Fatalf("IsExpired at %02d:59 = true, want false", hour)
		}
		if got := DaysUntil(exp, now); got != 0 {
			t.Fatalf("DaysUntil at %02d:59 = %d, want 0", hour, got)
		}
	}
}

func TestDaysUntilUsesReferenceLocation(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	exp := time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC)
	// 22:00 on Nov 2 in New York is already Nov 3 in UTC.
	now := time.Date(2026, time.November, 2, 22, 0, 0, 0, ny)
	if got := DaysUntil(exp, now); got != 1 {
		t.Fatalf("DaysUntil = %d, want 1", got)
	}
	// Crosses the DST change on Nov 1.
	now = time.Date(2026, time.October, 30, 8, 0, 0, 0, ny)
	if got := DaysUntil(exp, now); got != 4 {
		t.Fatalf("DaysUntil across DST = %d, want 4", got)
	}
}

func assertNames(t *testing.T, bucket string, got []Dated[credential], want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d records, want %d", bucket, len(got), len(want))
	}
	for i := range want {
		if got[i].Item.name != want[i] {
			t.Fatalf("%s[%d] = %q, want %q", bucket, i, got[i].Item.name, want[i])
		}
	}
}
