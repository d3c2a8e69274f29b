// Package stats derives dashboard aggregates from a project collection.
// Every function is pure: no shared state, deterministic for a given
// collection and as-of date, safe to call from any number of readers.
package stats

import (
	"math"
	"sort"
	"time"

	"roadmap/internal/domain"
)

// DashboardStats is the aggregate view the dashboard renders on every load.
// EstimatedROI is nil when the cost base is zero; that is a distinct state
// from an actual 0% ROI and must never collapse into it.
type DashboardStats struct {
	TotalProjects        int              `json:"totalProjects"`
	ActiveProjects       int              `json:"activeProjects"`
	CompletedProjects    int              `json:"completedProjects"`
	DelayedProjects      int              `json:"delayedProjects"`
	AverageProgress      int              `json:"averageProgress"`
	UpcomingDeadlines    []domain.Project `json:"upcomingDeadlines"`
	TotalEstimatedCost   float64          `json:"totalEstimatedCost"`
	TotalEstimatedReturn float64          `json:"totalEstimatedReturn"`
	EstimatedROI         *float64         `json:"estimatedROI,omitempty"`
}

// TeamMemberStats is the per-member rollup. Rank is 1-based and assigned
// after sorting so the top-N boundary stays stable for callers that re-sort.
type TeamMemberStats struct {
	Name              string   `json:"name"`
	Rank              int      `json:"rank"`
	ProjectCount      int      `json:"projectCount"`
	ActiveProjects    int      `json:"activeProjects"`
	CompletedProjects int      `json:"completedProjects"`
	Technologies      []string `json:"technologies"`
}

const upcomingDeadlineLimit = 3

// Aggregate computes the dashboard statistics for the collection as of the
// given date.
func Aggregate(projects []domain.Project, asOf time.Time) DashboardStats {
	s := DashboardStats{TotalProjects: len(projects)}

	progressSum := 0
	for _, p := range projects {
		switch p.Status {
		case "in-progress":
			s.ActiveProjects++
		case "completed":
			s.CompletedProjects++
		}
		// Delayed is a pure date/status check, independent of progress.
		if end, ok := domain.ParseDate(p.EndDate); ok && end.Before(asOf) && p.Status != "completed" {
			s.DelayedProjects++
		}
		progressSum += p.Progress
	}
	if len(projects) > 0 {
		s.AverageProgress = int(math.Round(float64(progressSum) / float64(len(projects))))
	}

	s.UpcomingDeadlines = upcomingDeadlines(projects)

	for _, p := range projects {
		if !p.HasCostBenefit || p.CostBenefit == nil {
			continue
		}
		s.TotalEstimatedCost += p.CostBenefit.EstimatedCost
		s.TotalEstimatedReturn += p.CostBenefit.EstimatedReturn
	}
	if s.TotalEstimatedCost > 0 {
		roi := (s.TotalEstimatedReturn - s.TotalEstimatedCost) / s.TotalEstimatedCost * 100
		s.EstimatedROI = &roi
	}
	return s
}

func upcomingDeadlines(projects []domain.Project) []domain.Project {
	open := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status != "completed" {
			open = append(open, p)
		}
	}
	// Stable so ties keep collection order; unparseable dates sort last.
	sort.SliceStable(open, func(i, j int) bool {
		a, aok := domain.ParseDate(open[i].EndDate)
		b, bok := domain.ParseDate(open[j].EndDate)
		if !aok || !bok {
			return aok
		}
		return a.Before(b)
	})
	if len(open) > upcomingDeadlineLimit {
		open = open[:upcomingDeadlineLimit]
	}
	return open
}

// TeamStats computes per-member rollups across the collection, ranked by
// project count descending. Members are keyed by exact display name; ties
// keep first-appearance order.
func TeamStats(projects []domain.Project) []TeamMemberStats {
	index := map[string]int{}
	var members []TeamMemberStats

	for _, p := range projects {
		for _, name := range p.Team {
			i, ok := index[name]
			if !ok {
				i = len(members)
				index[name] = i
				members = append(members, TeamMemberStats{Name: name})
			}
			m := &members[i]
			m.ProjectCount++
			switch p.Status {
			case "in-progress":
				m.ActiveProjects++
			case "completed":
				m.CompletedProjects++
			}
			for _, tech := range p.Technologies {
				if !contains(m.Technologies, tech) {
					m.Technologies = append(m.Technologies, tech)
				}
			}
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].ProjectCount > members[j].ProjectCount
	})
	for i := range members {
		members[i].Rank = i + 1
	}
	return members
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
