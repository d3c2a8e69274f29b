package events

import (
	"context"
	"database/sql"
)

// Event is one audit log record as read back for display.
type Event struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"ts"`
	Type      string `json:"type"`
	ProjectID string `json:"projectId,omitempty"`
	Payload   string `json:"payload"`
}

// Tail returns the newest n events, optionally narrowed by type and project.
func Tail(ctx context.Context, db *sql.DB, n int, evtType, projectID string) ([]Event, error) {
	if n <= 0 {
		n = 20
	}
	query := `SELECT id, ts, type, COALESCE(project_id,''), payload_json FROM events WHERE 1=1`
	args := []any{}
	if evtType != "" {
		query += ` AND type=?`
		args = append(args, evtType)
	}
	if projectID != "" {
		query += ` AND project_id=?`
		args = append(args, projectID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, n)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &e.ProjectID, &e.Payload); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
