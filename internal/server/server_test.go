package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"roadmap/internal/db"
	"roadmap/internal/domain"
	"roadmap/internal/engine"
	"roadmap/internal/logging"
	"roadmap/internal/migrate"
	"roadmap/internal/sheets"
	"roadmap/internal/stats"
	"roadmap/internal/store"
)

type testServer struct {
	URL    string
	client *http.Client
	close  func()
}

func (s *testServer) Client() *http.Client { return s.client }
func (s *testServer) Close()               { s.close() }

func newTestServer(t *testing.T, sheetsClient *sheets.Client) *testServer {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log := logging.Discard()
	gw := store.New(conn, log)
	e, err := engine.New(context.Background(), gw, log)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	handler, err := New(Config{Engine: e, Sheets: sheetsClient, BasePath: "/v0", Log: log})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: handler}
	go srv.Serve(ln)
	ts := &testServer{
		URL:    "http://" + ln.Addr().String(),
		client: &http.Client{},
		close: func() {
			srv.Shutdown(context.Background())
			ln.Close()
			conn.Close()
		},
	}
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

func TestProjectLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	client := srv.Client()

	// Seeded collection on first run.
	res, data := doJSON(t, client, http.MethodGet, srv.URL+"/v0/projects", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list status %d: %s", res.StatusCode, data)
	}
	var list ProjectListResponse
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("seeded total = %d, want 2", list.Total)
	}

	res, data = doJSON(t, client, http.MethodPost, srv.URL+"/v0/projects", map[string]any{
		"name":         "Analytics Service",
		"softwareType": "api",
		"status":       "planning",
		"priority":     "medium",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d: %s", res.StatusCode, data)
	}
	var created domain.Project
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.ID == "" || created.Progress != 0 {
		t.Fatalf("created = %+v", created)
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/v0/projects/"+created.ID, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get status %d: %s", res.StatusCode, data)
	}

	res, data = doJSON(t, client, http.MethodPatch, srv.URL+"/v0/projects/"+created.ID, map[string]any{
		"status":   "in-progress",
		"progress": 25,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("patch status %d: %s", res.StatusCode, data)
	}
	var patched domain.Project
	if err := json.Unmarshal(data, &patched); err != nil {
		t.Fatalf("unmarshal patched: %v", err)
	}
	if patched.Status != "in-progress" || patched.Progress != 25 {
		t.Fatalf("patched = %+v", patched)
	}
	if patched.Name != "Analytics Service" {
		t.Fatalf("unset fields must survive the patch: %+v", patched)
	}

	res, _ = doJSON(t, client, http.MethodDelete, srv.URL+"/v0/projects/"+created.ID, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", res.StatusCode)
	}
	// Deleting again is still a success.
	res, _ = doJSON(t, client, http.MethodDelete, srv.URL+"/v0/projects/"+created.ID, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("second delete status %d", res.StatusCode)
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/v0/projects/"+created.ID, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted status %d: %s", res.StatusCode, data)
	}
	var envelope struct {
		Body struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	if envelope.Body.Code != "not_found" {
		t.Fatalf("error code = %q: %s", envelope.Body.Code, data)
	}
}

func TestCreateRejectsMissingName(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/v0/projects", map[string]any{
		"softwareType": "web",
		"status":       "planning",
		"priority":     "low",
	})
	if res.StatusCode == http.StatusCreated {
		t.Fatalf("expected rejection, got created: %s", data)
	}
}

func TestListFilterParams(t *testing.T) {
	srv := newTestServer(t, nil)
	client := srv.Client()

	res, data := doJSON(t, client, http.MethodGet, srv.URL+"/v0/projects?status=planning", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
	var list ProjectListResponse
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, p := range list.Items {
		if p.Status != "planning" {
			t.Fatalf("filter leak: %+v", p)
		}
	}
	if list.Total != 1 {
		t.Fatalf("planning total = %d, want 1", list.Total)
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/v0/projects?q=banking", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if list.Total != 1 || list.Items[0].Name != "Mobile Banking App" {
		t.Fatalf("search result = %+v", list)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/v0/dashboard", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
	var s stats.DashboardStats
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.TotalProjects != 2 {
		t.Fatalf("total = %d, want 2", s.TotalProjects)
	}
	if s.EstimatedROI == nil {
		t.Fatalf("seeded collection has cost data, expected ROI")
	}
	if len(s.UpcomingDeadlines) == 0 {
		t.Fatalf("expected upcoming deadlines")
	}
}

func TestTeamEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/v0/team", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
	var team TeamResponse
	if err := json.Unmarshal(data, &team); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if team.Total != 5 {
		t.Fatalf("seeded members = %d, want 5", team.Total)
	}
	for i, m := range team.Members {
		if m.Rank != i+1 {
			t.Fatalf("rank at index %d = %d", i, m.Rank)
		}
	}
}

func TestSyncPushUnconfigured(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/v0/sync/1", nil)
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
}

func TestSyncPush(t *testing.T) {
	var posted map[string]any
	sheet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&posted)
		w.WriteHeader(http.StatusOK)
	}))
	defer sheet.Close()

	srv := newTestServer(t, sheets.New(sheet.URL))
	res, data := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/v0/sync/1", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
	if posted["Nome"] != "E-commerce Platform" {
		t.Fatalf("posted row = %v", posted)
	}
	var out SyncPushResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ProjectID != "1" {
		t.Fatalf("response = %+v", out)
	}
}

func TestSyncPushMissingProject(t *testing.T) {
	sheet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("remote must not be called for a missing project")
	}))
	defer sheet.Close()

	srv := newTestServer(t, sheets.New(sheet.URL))
	res, data := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/v0/sync/no-such-id", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
}

func TestSyncPushRemoteFailure(t *testing.T) {
	sheet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer sheet.Close()

	srv := newTestServer(t, sheets.New(sheet.URL))
	res, data := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/v0/sync/1", nil)
	if res.StatusCode != http.StatusBadGateway {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/v0/health", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, data)
	}
}
