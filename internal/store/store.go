package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"roadmap/internal/domain"
)

// Namespace is the fixed key the whole collection is stored under.
const Namespace = "project-roadmap-data"

var ErrNotFound = errors.New("not found")

// Gateway persists the full project collection as one record under a fixed
// namespace key. Every save is a total overwrite; there is no incremental
// path.
type Gateway struct {
	DB  *sql.DB
	Log *logrus.Logger
	Now func() time.Time
}

func New(db *sql.DB, log *logrus.Logger) *Gateway {
	return &Gateway{DB: db, Log: log, Now: time.Now}
}

func (g *Gateway) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Load reads the stored collection. On first run it seeds the canonical
// example collection and persists it so subsequent loads are stable. A
// corrupt payload is logged and degrades to an empty collection; it never
// propagates as a failure.
func (g *Gateway) Load(ctx context.Context) ([]domain.Project, error) {
	var payload string
	err := g.DB.QueryRowContext(ctx, `SELECT payload FROM collections WHERE namespace=?`, Namespace).Scan(&payload)
	if err == sql.ErrNoRows {
		seed := SeedProjects()
		if err := g.Save(ctx, seed); err != nil {
			return nil, fmt.Errorf("persist seed collection: %w", err)
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	var projects []domain.Project
	if err := json.Unmarshal([]byte(payload), &projects); err != nil {
		g.Log.WithError(err).Error("stored collection is corrupt, starting empty")
		return []domain.Project{}, nil
	}
	return projects, nil
}

// Save overwrites the stored collection with a full reserialization.
func (g *Gateway) Save(ctx context.Context, projects []domain.Project) error {
	if projects == nil {
		projects = []domain.Project{}
	}
	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	now := g.now().UTC().Format(time.RFC3339)
	_, err = g.DB.ExecContext(ctx, `INSERT INTO collections(namespace,payload,updated_at) VALUES (?,?,?)
ON CONFLICT(namespace) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		Namespace, string(payload), now)
	if err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}
