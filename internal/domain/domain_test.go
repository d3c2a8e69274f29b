package domain_test

import (
	"testing"

	"roadmap/internal/domain"
)

func TestParseDate(t *testing.T) {
	if _, ok := domain.ParseDate("2024-06-30"); !ok {
		t.Fatalf("valid date rejected")
	}
	for _, bad := range []string{"", "30/06/2024", "2024-13-01", "soon"} {
		if _, ok := domain.ParseDate(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestLabels(t *testing.T) {
	if got := domain.StatusLabel("in-progress"); got != "In Progress" {
		t.Fatalf("status label = %q", got)
	}
	if got := domain.SoftwareTypeLabel("devops"); got != "DevOps" {
		t.Fatalf("software type label = %q", got)
	}
	if got := domain.CostTypeLabel("avoided"); got != "Avoided Cost" {
		t.Fatalf("cost type label = %q", got)
	}
}

func TestLabelFallback(t *testing.T) {
	for _, got := range []string{
		domain.StatusLabel("archived"),
		domain.PriorityLabel(""),
		domain.MilestoneTypeLabel("launch"),
	} {
		if got != domain.FallbackLabel {
			t.Fatalf("unknown value label = %q, want %q", got, domain.FallbackLabel)
		}
	}
}

func TestVocabularies(t *testing.T) {
	if got := len(domain.Statuses()); got != 5 {
		t.Fatalf("statuses = %d, want 5", got)
	}
	if got := len(domain.SoftwareTypes()); got != 6 {
		t.Fatalf("software types = %d, want 6", got)
	}
	if got := len(domain.Priorities()); got != 4 {
		t.Fatalf("priorities = %d, want 4", got)
	}
}
