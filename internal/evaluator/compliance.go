package evaluator

import (
	"sort"
	"time"
)

// EvidenceStatus is the review state of an uploaded proof record.
type EvidenceStatus string

const (
	EvidencePending  EvidenceStatus = "pending"
	EvidenceApproved EvidenceStatus = "approved"
	EvidenceRejected EvidenceStatus = "rejected"
)

// ItemStatus is the derived state of a compliance checklist item.
type ItemStatus string

const (
	ItemCompliant ItemStatus = "compliant"
	ItemPending   ItemStatus = "pending"
	ItemExpired   ItemStatus = "expired"
	ItemMissing   ItemStatus = "missing"
)

// EvidenceInput is one proof record for an item.
type EvidenceInput struct {
	Status         EvidenceStatus
	ExpirationDate *time.Time
	CreatedAt      time.Time
}

// ItemInput is a checklist item with every evidence record uploaded for it.
type ItemInput struct {
	ID       string
	Category string
	Evidence []EvidenceInput
}

// LatestEvidence returns the most recently created evidence record. Ties keep
// the first one seen.
func LatestEvidence(evidence []EvidenceInput) (EvidenceInput, bool) {
	if len(evidence) == 0 {
		return EvidenceInput{}, false
	}
	latest := evidence[0]
	for _, e := range evidence[1:] {
		if e.CreatedAt.After(latest.CreatedAt) {
			latest = e
		}
	}
	return latest, true
}

// StatusOf derives an item's status from its latest evidence. Rejected
// evidence leaves the item missing.
func StatusOf(item ItemInput, now time.Time) ItemStatus {
	latest, ok := LatestEvidence(item.Evidence)
	if !ok {
		return ItemMissing
	}
	switch latest.Status {
	case EvidenceApproved:
		if IsExpired(latest.ExpirationDate, now) {
			return ItemExpired
		}
		return ItemCompliant
	case EvidencePending:
		return ItemPending
	default:
		return ItemMissing
	}
}

// CategoryScore summarizes one category. Vacuous marks a score of 100 that
// comes from having no items at all.
type CategoryScore struct {
	Category  string `json:"category"`
	Total     int    `json:"total"`
	Compliant int    `json:"compliant"`
	Pending   int    `json:"pending"`
	Expired   int    `json:"expired"`
	Missing   int    `json:"missing"`
	Score     int    `json:"score"`
	Vacuous   bool   `json:"vacuous"`
}

func (c *CategoryScore) add(status ItemStatus) {
	c.Total++
	switch status {
	case ItemCompliant:
		c.Compliant++
	case ItemPending:
		c.Pending++
	case ItemExpired:
		c.Expired++
	case ItemMissing:
		c.Missing++
	}
}

func (c *CategoryScore) finish() {
	if c.Total == 0 {
		c.Score = 100
		c.Vacuous = true
		return
	}
	c.Score = Percent(c.Compliant, c.Total)
}

// ComplianceSummary holds per-category scores sorted by name and the overall
// score across every item.
type ComplianceSummary struct {
	Overall    CategoryScore         `json:"overall"`
	Categories []CategoryScore       `json:"categories"`
	Statuses   map[string]ItemStatus `json:"statuses"`
}

// ScoreCategories derives each item's status and aggregates scores. With no
// items every score is 100.
func ScoreCategories(items []ItemInput, now time.Time) ComplianceSummary {
	summary := ComplianceSummary{
		Overall:    CategoryScore{Category: "overall"},
		Categories: []CategoryScore{},
		Statuses:   make(map[string]ItemStatus, len(items)),
	}
	byCategory := make(map[string]*CategoryScore)

	for _, item := range items {
		status := StatusOf(item, now)
		summary.Statuses[item.ID] = status
		summary.Overall.add(status)

		cat, ok := byCategory[item.Category]
		if !ok {
			cat = &CategoryScore{Category: item.Category}
			byCategory[item.Category] = cat
		}
		cat.add(status)
	}

	for _, cat := range byCategory {
		cat.finish()
		summary.Categories = append(summary.Categories, *cat)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})
	summary.Overall.finish()

	return summary
}
