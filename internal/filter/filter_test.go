package filter_test

import (
	"reflect"
	"testing"

	"roadmap/internal/domain"
	"roadmap/internal/filter"
)

func sample() []domain.Project {
	return []domain.Project{
		{ID: "1", Name: "E-commerce Platform", Description: "online store", Status: "in-progress", SoftwareType: "web", Priority: "high", Technologies: []string{"React", "Node.js"}},
		{ID: "2", Name: "Banking App", Description: "secure mobile banking", Status: "planning", SoftwareType: "mobile", Priority: "critical", Technologies: []string{"React Native"}},
		{ID: "3", Name: "ETL Pipeline", Description: "nightly batch loads", Status: "completed", SoftwareType: "api", Priority: "low", Technologies: []string{"Go", "PostgreSQL"}},
	}
}

func ids(projects []domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyIdentity(t *testing.T) {
	in := sample()
	out := filter.Apply(in, "", filter.Filters{})
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("no constraints must return the collection unchanged")
	}
}

func TestApplyIdempotent(t *testing.T) {
	f := filter.Filters{Status: []string{"in-progress", "planning"}}
	once := filter.Apply(sample(), "app", f)
	twice := filter.Apply(once, "app", f)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("reapplying the same constraints changed the result: %v vs %v", ids(once), ids(twice))
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	out := filter.Apply(sample(), "BANKING", filter.Filters{})
	if got := ids(out); len(got) != 1 || got[0] != "2" {
		t.Fatalf("search BANKING = %v, want [2]", got)
	}
}

func TestSearchMatchesTechnologies(t *testing.T) {
	out := filter.Apply(sample(), "react", filter.Filters{})
	if got := ids(out); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Fatalf("search react = %v, want [1 2]", got)
	}
}

func TestStatusValuesCombineWithOR(t *testing.T) {
	out := filter.Apply(sample(), "", filter.Filters{Status: []string{"planning", "completed"}})
	if got := ids(out); len(got) != 2 || got[0] != "2" || got[1] != "3" {
		t.Fatalf("status filter = %v, want [2 3]", got)
	}
}

func TestDimensionsCombineWithAND(t *testing.T) {
	out := filter.Apply(sample(), "", filter.Filters{
		Status:       []string{"in-progress", "planning"},
		SoftwareType: []string{"mobile"},
	})
	if got := ids(out); len(got) != 1 || got[0] != "2" {
		t.Fatalf("combined filter = %v, want [2]", got)
	}
}

func TestSearchAndFiltersCompose(t *testing.T) {
	out := filter.Apply(sample(), "react", filter.Filters{Priority: []string{"high"}})
	if got := ids(out); len(got) != 1 || got[0] != "1" {
		t.Fatalf("search+priority = %v, want [1]", got)
	}
}

func TestNoMatchesYieldsEmpty(t *testing.T) {
	out := filter.Apply(sample(), "", filter.Filters{Status: []string{"on-hold"}})
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", ids(out))
	}
}
