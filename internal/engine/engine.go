package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roadmap/internal/domain"
	"roadmap/internal/events"
	"roadmap/internal/store"
)

// Engine is the mutation service. It owns the single in-memory snapshot of
// the collection; the aggregation and filter engines only ever receive
// copies of it. Every mutation is write-through: the whole collection is
// re-persisted before the call returns.
//
// A write failure is logged and does not roll the in-memory mutation back.
// That leaves a durability gap the caller accepts (the next successful save
// closes it); it never surfaces as a mutation error.
type Engine struct {
	Store  *store.Gateway
	Events events.Writer
	Log    *logrus.Logger
	Now    func() time.Time

	mu       sync.Mutex
	projects []domain.Project
}

// New loads the collection through the gateway and returns a ready engine.
func New(ctx context.Context, gw *store.Gateway, log *logrus.Logger) (*Engine, error) {
	projects, err := gw.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Store:    gw,
		Events:   events.Writer{DB: gw.DB},
		Log:      log,
		Now:      time.Now,
		projects: projects,
	}, nil
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Projects returns a snapshot copy of the collection in storage order.
func (e *Engine) Projects() []domain.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	snapshot := make([]domain.Project, len(e.projects))
	copy(snapshot, e.projects)
	return snapshot
}

// Get returns the project with the given id.
func (e *Engine) Get(id string) (domain.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, store.ErrNotFound
}

// Create builds a new project from the form data, appends it to the
// collection and persists. The engine assigns id, zero progress and both
// timestamps; callers never set those.
func (e *Engine) Create(ctx context.Context, form domain.ProjectFormData) domain.Project {
	now := e.now().UTC().Format(time.RFC3339)
	p := domain.Project{
		ID:             uuid.New().String(),
		Name:           form.Name,
		Description:    form.Description,
		SoftwareType:   form.SoftwareType,
		Status:         form.Status,
		Priority:       form.Priority,
		StartDate:      form.StartDate,
		EndDate:        form.EndDate,
		Team:           form.Team,
		Technologies:   form.Technologies,
		Progress:       0,
		Milestones:     form.Milestones,
		Epics:          form.Epics,
		HasCostBenefit: form.HasCostBenefit,
		CostBenefit:    form.CostBenefit,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if !p.HasCostBenefit {
		p.CostBenefit = nil
	}

	e.mu.Lock()
	e.projects = append(e.projects, p)
	snapshot := make([]domain.Project, len(e.projects))
	copy(snapshot, e.projects)
	e.mu.Unlock()

	e.persist(ctx, snapshot)
	e.appendEvent(ctx, "project.created", p.ID, events.EventPayload{"name": p.Name, "status": p.Status})
	return p
}

// Update merges the patch into the project with the given id and persists.
// A missing id is a silent no-op by contract: found=false, no error.
// Collection order is preserved.
func (e *Engine) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, bool) {
	e.mu.Lock()
	idx := -1
	for i := range e.projects {
		if e.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return domain.Project{}, false
	}
	merged := applyPatch(e.projects[idx], patch)
	merged.UpdatedAt = e.now().UTC().Format(time.RFC3339)
	e.projects[idx] = merged
	snapshot := make([]domain.Project, len(e.projects))
	copy(snapshot, e.projects)
	e.mu.Unlock()

	e.persist(ctx, snapshot)
	e.appendEvent(ctx, "project.updated", id, events.EventPayload{"status": merged.Status})
	return merged, true
}

// Delete removes the project with the given id and persists. A missing id
// is a silent no-op: found=false, no error.
func (e *Engine) Delete(ctx context.Context, id string) bool {
	e.mu.Lock()
	idx := -1
	for i := range e.projects {
		if e.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	e.projects = append(e.projects[:idx], e.projects[idx+1:]...)
	snapshot := make([]domain.Project, len(e.projects))
	copy(snapshot, e.projects)
	e.mu.Unlock()

	e.persist(ctx, snapshot)
	e.appendEvent(ctx, "project.deleted", id, nil)
	return true
}

func (e *Engine) persist(ctx context.Context, snapshot []domain.Project) {
	if err := e.Store.Save(ctx, snapshot); err != nil {
		e.Log.WithError(err).Error("collection save failed, in-memory state retains the mutation")
	}
}

func (e *Engine) appendEvent(ctx context.Context, evtType, projectID string, payload events.EventPayload) {
	if err := e.Events.Append(ctx, evtType, projectID, payload); err != nil {
		e.Log.WithError(err).Warn("event append failed")
	}
}

func applyPatch(p domain.Project, patch domain.ProjectPatch) domain.Project {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.SoftwareType != nil {
		p.SoftwareType = *patch.SoftwareType
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Priority != nil {
		p.Priority = *patch.Priority
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	if patch.Team != nil {
		p.Team = *patch.Team
	}
	if patch.Technologies != nil {
		p.Technologies = *patch.Technologies
	}
	if patch.Progress != nil {
		p.Progress = *patch.Progress
	}
	if patch.Milestones != nil {
		p.Milestones = *patch.Milestones
	}
	if patch.Epics != nil {
		p.Epics = *patch.Epics
	}
	if patch.HasCostBenefit != nil {
		p.HasCostBenefit = *patch.HasCostBenefit
	}
	if patch.CostBenefit != nil {
		p.CostBenefit = patch.CostBenefit
	}
	if !p.HasCostBenefit {
		// The flag gates the record; a false flag means nothing may read it.
		p.CostBenefit = nil
	}
	return p
}
