package audit

import (
	"fmt"
	"time"
)

// EventType partitions the audit stream.
type EventType string

const (
	// EventDecision records one authorization gate evaluation.
	EventDecision EventType = "authorization_decision"
	// EventChange records one committed mutation.
	EventChange EventType = "change"
)

// Result is the outcome of an audited operation.
type Result string

const (
	ResultSuccess Result = "success"
	ResultDenied  Result = "denied"
	ResultError   Result = "error"
)

// Decision is the outcome of a single gate evaluation. It is ephemeral:
// the core emits it and forgets it.
type Decision struct {
	PrincipalID  string `json:"principal_id" bson:"principal_id"`
	Action       string `json:"action" bson:"action"`
	ResourceType string `json:"resource_type" bson:"resource_type"`
	ResourceID   string `json:"resource_id" bson:"resource_id"`
	Granted      bool   `json:"granted" bson:"granted"`
	Reason       string `json:"reason" bson:"reason"`
}

// ChangeRecord describes one committed mutation with explicit before/after
// snapshots. Nil Before means a create; nil After means a delete.
type ChangeRecord struct {
	PrincipalID  string         `json:"principal_id" bson:"principal_id"`
	Operation    string         `json:"operation" bson:"operation"` // create, update, delete
	ResourceType string         `json:"resource_type" bson:"resource_type"`
	ResourceID   string         `json:"resource_id" bson:"resource_id"`
	Before       map[string]any `json:"before,omitempty" bson:"before,omitempty"`
	After        map[string]any `json:"after,omitempty" bson:"after,omitempty"`
}

// Event is the persisted union of both record shapes.
type Event struct {
	ID           string         `json:"id" bson:"_id"`
	Type         EventType      `json:"type" bson:"type"`
	PrincipalID  string         `json:"principal_id" bson:"principal_id"`
	Action       string         `json:"action" bson:"action"`
	ResourceType string         `json:"resource_type" bson:"resource_type"`
	ResourceID   string         `json:"resource_id" bson:"resource_id"`
	Granted      bool           `json:"granted" bson:"granted"`
	Reason       string         `json:"reason,omitempty" bson:"reason,omitempty"`
	Before       map[string]any `json:"before,omitempty" bson:"before,omitempty"`
	After        map[string]any `json:"after,omitempty" bson:"after,omitempty"`
	Result       Result         `json:"result" bson:"result"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
}

// Validate checks the fields every event must carry.
func (e *Event) Validate() error {
	if e.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidEvent)
	}
	if e.PrincipalID == "" {
		return fmt.Errorf("%w: principal_id is required", ErrInvalidEvent)
	}
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrInvalidEvent)
	}
	return nil
}

// Criteria filters audit queries. Zero fields match everything.
type Criteria struct {
	Type         EventType
	PrincipalID  string
	ResourceType string
	ResourceID   string
	From         time.Time
	To           time.Time
	Limit        int
}

// Matches reports whether the event satisfies the criteria.
func (c Criteria) Matches(e Event) bool {
	if c.Type != "" && e.Type != c.Type {
		return false
	}
	if c.PrincipalID != "" && e.PrincipalID != c.PrincipalID {
		return false
	}
	if c.ResourceType != "" && e.ResourceType != c.ResourceType {
		return false
	}
	if c.ResourceID != "" && e.ResourceID != c.ResourceID {
		return false
	}
	if !c.From.IsZero() && e.CreatedAt.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && e.CreatedAt.After(c.To) {
		return false
	}
	return true
}
