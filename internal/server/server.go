package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"roadmap/internal/domain"
	"roadmap/internal/engine"
	"roadmap/internal/filter"
	"roadmap/internal/sheets"
	"roadmap/internal/stats"
	"roadmap/internal/store"
)

// Config for the HTTP API handler.
type Config struct {
	Engine   *engine.Engine
	Sheets   *sheets.Client
	BasePath string
	Log      *logrus.Logger
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"not_found"`
	Message string         `json:"message" example:"project not found"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the roadmap API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}

	router := chi.NewRouter()
	hcfg := huma.DefaultConfig("Roadmap API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerProjects(group, cfg.Engine)
	registerDashboard(group, cfg.Engine)
	registerTeam(group, cfg.Engine)
	registerSync(group, cfg.Engine, cfg.Sheets, cfg.Log)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return newAPIError(http.StatusNotFound, "not_found", err.Error(), nil)
	}
	var ae *sheets.APIError
	if errors.As(err, &ae) {
		return newAPIError(http.StatusBadGateway, "sync_failed", err.Error(), map[string]any{"status": ae.StatusCode})
	}
	return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": err.Error()})
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadGateway:
		return "sync_failed"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

// filterParams are the shared search/filter query parameters. Repeatable
// multi-select dimensions; empty means unconstrained.
type filterParams struct {
	Q        string   `query:"q" doc:"Case-insensitive search over name, description and technologies"`
	Status   []string `query:"status" doc:"Status filter, repeatable"`
	Type     []string `query:"type" doc:"Software type filter, repeatable"`
	Priority []string `query:"priority" doc:"Priority filter, repeatable"`
}

func (fp filterParams) apply(projects []domain.Project) []domain.Project {
	return filter.Apply(projects, fp.Q, filter.Filters{
		Status:       fp.Status,
		SoftwareType: fp.Type,
		Priority:     fp.Priority,
	})
}

func registerProjects(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects",
		Description: "Returns the collection in storage order, optionally narrowed by search and filters.",
	}, func(ctx context.Context, input *filterParams) (*struct {
		Body ProjectListResponse `json:"body"`
	}, error) {
		items := input.apply(e.Projects())
		return &struct {
			Body ProjectListResponse `json:"body"`
		}{Body: ProjectListResponse{Items: items, Total: len(items)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-project",
		Method:        http.MethodPost,
		Path:          "/projects",
		Summary:       "Create project",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body domain.ProjectFormData `json:"body"`
	}) (*struct {
		Body domain.Project `json:"body"`
	}, error) {
		if input.Body.Name == "" {
			return nil, newAPIError(http.StatusBadRequest, "bad_request", "name is required", nil)
		}
		p := e.Create(ctx, input.Body)
		return &struct {
			Body domain.Project `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{project_id}",
		Summary:     "Get project",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ProjectID string `path:"project_id"`
	}) (*struct {
		Body domain.Project `json:"body"`
	}, error) {
		p, err := e.Get(input.ProjectID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Project `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPatch,
		Path:        "/projects/{project_id}",
		Summary:     "Update project",
		Description: "Merges the set fields into the project and bumps updatedAt. Unset fields are untouched.",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ProjectID string              `path:"project_id"`
		Body      domain.ProjectPatch `json:"body"`
	}) (*struct {
		Body domain.Project `json:"body"`
	}, error) {
		p, found := e.Update(ctx, input.ProjectID, input.Body)
		if !found {
			return nil, newAPIError(http.StatusNotFound, "not_found", "project "+input.ProjectID+" not found", nil)
		}
		return &struct {
			Body domain.Project `json:"body"`
		}{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-project",
		Method:        http.MethodDelete,
		Path:          "/projects/{project_id}",
		Summary:       "Delete project",
		Description:   "Idempotent; deleting an absent id succeeds without effect.",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		ProjectID string `path:"project_id"`
	}) (*struct{}, error) {
		e.Delete(ctx, input.ProjectID)
		return &struct{}{}, nil
	})
}

func registerDashboard(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Dashboard statistics",
		Description: "Aggregates the collection (after optional filtering) as of today. Recomputed from scratch every call.",
	}, func(ctx context.Context, input *filterParams) (*struct {
		Body stats.DashboardStats `json:"body"`
	}, error) {
		s := stats.Aggregate(input.apply(e.Projects()), time.Now().UTC())
		return &struct {
			Body stats.DashboardStats `json:"body"`
		}{Body: s}, nil
	})
}

func registerTeam(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "team",
		Method:      http.MethodGet,
		Path:        "/team",
		Summary:     "Team member rollups",
		Description: "Per-member project counts and technologies, ranked by project count.",
	}, func(ctx context.Context, input *filterParams) (*struct {
		Body TeamResponse `json:"body"`
	}, error) {
		members := stats.TeamStats(input.apply(e.Projects()))
		return &struct {
			Body TeamResponse `json:"body"`
		}{Body: TeamResponse{Members: members, Total: len(members)}}, nil
	})
}

func registerSync(api huma.API, e *engine.Engine, client *sheets.Client, log *logrus.Logger) {
	huma.Register(api, huma.Operation{
		OperationID: "sync-pull",
		Method:      http.MethodGet,
		Path:        "/sync",
		Summary:     "Fetch remote sheet rows",
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body SyncRowsResponse `json:"body"`
	}, error) {
		if client == nil {
			return nil, newAPIError(http.StatusServiceUnavailable, "sync_unconfigured", "no sheets endpoint configured", nil)
		}
		rows, err := client.FetchAll(ctx)
		if err != nil {
			log.WithError(err).Error("sheet fetch failed")
			return nil, handleError(err)
		}
		return &struct {
			Body SyncRowsResponse `json:"body"`
		}{Body: SyncRowsResponse{Rows: rows, Total: len(rows)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "sync-push",
		Method:      http.MethodPost,
		Path:        "/sync/{project_id}",
		Summary:     "Append one project to the remote sheet",
		Description: "Flattens the project into the remote row schema. No retry; on failure resubmit.",
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, func(ctx context.Context, input *struct {
		ProjectID string `path:"project_id"`
	}) (*struct {
		Body SyncPushResponse `json:"body"`
	}, error) {
		if client == nil {
			return nil, newAPIError(http.StatusServiceUnavailable, "sync_unconfigured", "no sheets endpoint configured", nil)
		}
		p, err := e.Get(input.ProjectID)
		if err != nil {
			return nil, handleError(err)
		}
		row := sheets.RowFromProject(p)
		if err := client.Append(ctx, row); err != nil {
			log.WithError(err).Error("sheet append failed")
			return nil, handleError(err)
		}
		return &struct {
			Body SyncPushResponse `json:"body"`
		}{Body: SyncPushResponse{ProjectID: p.ID, Row: row}}, nil
	})
}
