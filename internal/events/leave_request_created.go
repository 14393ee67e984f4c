package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

type LeaveRequestCreatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	LeaveID     string    `json:"leave_id"`
	Reference   string    `json:"reference"`
	RequesterID string    `json:"requester_id"`
	LeaveType   string    `json:"leave_type"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
