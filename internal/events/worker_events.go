package events

import "time"

const WorkerLifecycleTopic = "workerpro.worker.lifecycle.v1"

const (
	WorkerCreated     = "worker_created"
	WorkerUpdated     = "worker_updated"
	WorkerDeactivated = "worker_deactivated"
)

type WorkerEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	WorkerID   string    `json:"worker_id"`
	WorkersID  string    `json:"workers_id"`
	Source     string    `json:"source"` // "manual" or "import"
	OccurredAt time.Time `json:"occurred_at"`
}
