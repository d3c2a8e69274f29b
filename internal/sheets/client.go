// Package sheets talks to the spreadsheet-backed sync endpoint. Its row
// schema is a separate, simplified contract from the local persisted
// format: no epics, no cost/benefit, no team or technologies. The two
// persistence paths are independent and are never assumed consistent.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"roadmap/internal/domain"
)

// Row is one flattened record as the remote endpoint stores it. The short
// field codes are fixed by the endpoint and must not be renamed.
type Row struct {
	ID           string `json:"ID"`
	Name         string `json:"Nome"`
	Description  string `json:"Descricao"`
	StartDate    string `json:"Inicio"`
	EndDate      string `json:"Fim"`
	Status       string `json:"Status"`
	SoftwareType string `json:"Tipo"`
	Progress     int    `json:"Progresso"`
	Milestones   string `json:"Marcos"`
}

// RowFromProject flattens a project into the remote schema. Milestones
// collapse to a semicolon-joined title list; everything the schema has no
// column for is dropped.
func RowFromProject(p domain.Project) Row {
	titles := make([]string, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		titles = append(titles, m.Title)
	}
	return Row{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       p.Status,
		SoftwareType: p.SoftwareType,
		Progress:     p.Progress,
		Milestones:   strings.Join(titles, "; "),
	}
}

// Client is a minimal sync-endpoint HTTP client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sheets api error: status=%d body=%s", e.StatusCode, e.Body)
}

// FetchAll returns every row the endpoint holds. Each call is an
// independent, non-retried exchange.
func (c *Client) FetchAll(ctx context.Context) ([]Row, error) {
	var rows []Row
	if err := c.do(ctx, http.MethodGet, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Append writes one row. Either it fully succeeds or the caller resubmits;
// there is no partial-success state.
func (c *Client) Append(ctx context.Context, row Row) error {
	return c.do(ctx, http.MethodPost, row, nil)
}

func (c *Client) do(ctx context.Context, method string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/"), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
