package evaluator

import (
	"testing"
	"time"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	now := reference
	older := now.Add(-72 * time.Hour)
	newer := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		evidence []EvidenceInput
		want     ItemStatus
	}{
		{name: "no evidence", want: ItemMissing},
		{name: "approved no expiry", evidence: []EvidenceInput{{Status: EvidenceApproved, CreatedAt: newer}}, want: ItemCompliant},
		{name: "approved future expiry", evidence: []EvidenceInput{{Status: EvidenceApproved, ExpirationDate: daysFrom(now, 10), CreatedAt: newer}}, want: ItemCompliant},
		{name: "approved expired", evidence: []EvidenceInput{{Status: EvidenceApproved, ExpirationDate: daysFrom(now, -1), CreatedAt: newer}}, want: ItemExpired},
		{name: "pending", evidence: []EvidenceInput{{Status: EvidencePending, CreatedAt: newer}}, want: ItemPending},
		{name: "rejected", evidence: []EvidenceInput{{Status: EvidenceRejected, CreatedAt: newer}}, want: ItemMissing},
		{
			name: "latest wins over older approval",
			evidence: []EvidenceInput{
				{Status: EvidenceApproved, CreatedAt: older},
				{Status: EvidencePending, CreatedAt: newer},
			},
			want: ItemPending,
		},
		{
			name: "latest wins regardless of order",
			evidence: []EvidenceInput{
				{Status: EvidenceApproved, CreatedAt: newer},
				{Status: EvidenceRejected, CreatedAt: older},
			},
			want: ItemCompliant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := StatusOf(ItemInput{ID: "x", Evidence: tt.evidence}, now)
			if got != tt.want {
				t.Fatalf("StatusOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreCategories(t *testing.T) {
	t.Parallel()

	now := reference
	created := now.Add(-time.Hour)
	items := []ItemInput{
		{ID: "1", Category: "safety", Evidence: []EvidenceInput{{Status: EvidenceApproved, CreatedAt: created}}},
		{ID: "2", Category: "safety", Evidence: []EvidenceInput{{Status: EvidencePending, CreatedAt: created}}},
		{ID: "3", Category: "safety"},
		{ID: "4", Category: "health", Evidence: []EvidenceInput{{Status: EvidenceApproved, CreatedAt: created}}},
		{ID: "5", Category: "health", Evidence: []EvidenceInput{{Status: EvidenceApproved, ExpirationDate: daysFrom(now, -3), CreatedAt: created}}},
	}

	got := ScoreCategories(items, now)

	if len(got.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(got.Categories))
	}
	health, safety := got.Categories[0], got.Categories[1]
	if health.Category != "health" || safety.Category != "safety" {
		t.Fatalf("category order = %q, %q", health.Category, safety.Category)
	}
	if safety.Score != 33 || safety.Compliant != 1 || safety.Pending != 1 || safety.Missing != 1 {
		t.Fatalf("safety = %+v", safety)
	}
	if health.Score != 50 || health.Expired != 1 {
		t.Fatalf("health = %+v", health)
	}
	if got.Overall.Score != 40 || got.Overall.Total != 5 {
		t.Fatalf("overall = %+v", got.Overall)
	}
	if got.Statuses["5"] != ItemExpired {
		t.Fatalf("status of 5 = %q", got.Statuses["5"])
	}
}

func TestScoreCategoriesWithNoItemsIsVacuouslyCompliant(t *testing.T) {
	t.Parallel()

	got := ScoreCategories(nil, reference)
	if got.Overall.Score != 100 {
		t.Fatalf("overall score = %d, want 100", got.Overall.Score)
	}
	if !got.Overall.Vacuous {
		t.Fatal("overall not flagged vacuous")
	}
	if len(got.Categories) != 0 {
		t.Fatalf("categories = %d, want 0", len(got.Categories))
	}
}
