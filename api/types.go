package api

import (
	"time"

	"github.com/messersm/pyscan/scanner"
)

// Task statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ScanTask represents a scan job managed by the API service.
type ScanTask struct {
	// ID is the immutable UUIDv4 identifier assigned when the task is accepted.
	ID string `json:"id" example:"a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"`
	// Status is the lifecycle state: pending, running, completed, or failed.
	Status string `json:"status" enums:"pending,running,completed,failed" example:"pending"`
	// Hosts lists every hostname or IP submitted for the scan.
	Hosts []string `json:"hosts" example:"scanme.nmap.org,192.0.2.10"`
	// Ports is the requested port selection as comma-separated values and ranges.
	Ports string `json:"ports" example:"22,80,443,1000-1100"`
	// TimeoutMs is the per-attempt connect timeout in milliseconds.
	TimeoutMs int `json:"timeout_ms,omitempty" example:"1000"`
	// Workers is the number of concurrent scan workers for this task.
	Workers int `json:"workers,omitempty" example:"100"`
	// Results holds the port findings once the task completes.
	Results []scanner.ScanResult `json:"results,omitempty"`
	// CreatedAt records when the API accepted the request (UTC).
	CreatedAt time.Time `json:"created_at" example:"2024-01-02T15:04:05Z"`
	// CompletedAt is set once the task reaches a terminal state.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	// Error describes why a task entered the failed status.
	Error string `json:"error,omitempty" example:"empty port spec"`
}

// CreateScanRequest is the payload for creating new scan tasks.
type CreateScanRequest struct {
	// Hosts enumerates the targets to probe; at least one entry is required.
	Hosts []string `json:"hosts" binding:"required,min=1" example:"scanme.nmap.org"`
	// Ports combines single ports and inclusive ranges, e.g. "22,80,1000-1100".
	Ports string `json:"ports" binding:"required" example:"22,80,443"`
	// TimeoutMs optionally overrides the connect timeout in milliseconds.
	TimeoutMs int `json:"timeout_ms,omitempty" binding:"omitempty,min=1" example:"1000"`
	// Workers optionally overrides the concurrent worker count.
	Workers int `json:"workers,omitempty" binding:"omitempty,min=1,max=1000" example:"100"`
}

// ScanAcceptedResponse is the asynchronous acknowledgement returned after
// job submission.
type ScanAcceptedResponse struct {
	// ID is the task identifier to supply when polling GET /scans/{id}.
	ID string `json:"id" example:"a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"`
	// Status is always pending immediately after acceptance.
	Status string `json:"status" enums:"pending" example:"pending"`
}

// ErrorResponse provides a consistent structure for API error payloads.
type ErrorResponse struct {
	// Error is a human-readable explanation of why the request failed.
	Error string `json:"error" example:"task not found"`
}
