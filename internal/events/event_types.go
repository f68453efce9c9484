package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/users-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPrincipalCreated EventType = "principal.created"
	EventPrincipalUpdated EventType = "principal.updated"
	EventPrincipalDeleted EventType = "principal.deleted"
)

// Event describes a lifecycle change of a personnel record that can authenticate.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Role      domain.Role `json:"role"`
	SubjectID int64       `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewPrincipalEvent stamps a new event with a fresh id.
func NewPrincipalEvent(eventType EventType, role domain.Role, subjectID int64) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Role:      role,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
	}
}
