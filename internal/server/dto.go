package server

import (
	"roadmap/internal/domain"
	"roadmap/internal/sheets"
	"roadmap/internal/stats"
)

// Response payloads. Request bodies reuse the domain form/patch types
// directly; their JSON tags are the external contract.

type ProjectListResponse struct {
	Items []domain.Project `json:"items"`
	Total int              `json:"total"`
}

type TeamResponse struct {
	Members []stats.TeamMemberStats `json:"members"`
	Total   int                     `json:"total"`
}

type SyncRowsResponse struct {
	Rows  []sheets.Row `json:"rows"`
	Total int          `json:"total"`
}

type SyncPushResponse struct {
	ProjectID string     `json:"projectId"`
	Row       sheets.Row `json:"row"`
}
