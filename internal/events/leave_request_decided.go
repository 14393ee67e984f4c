package events

import "time"

type LeaveRequestDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	LeaveID    string    `json:"leave_id"`
	Reference  string    `json:"reference"`
	Stage      string    `json:"stage"`
	Decision   string    `json:"decision"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
