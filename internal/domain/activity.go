package domain

import "time"

// ActivityType categorizes a board mutation.
type ActivityType string

const (
	ActivityCreated ActivityType = "created"
	ActivityEdited  ActivityType = "edited"
	ActivityMoved   ActivityType = "moved"
	ActivityDeleted ActivityType = "deleted"
)

// ActivityEntry is an immutable audit record of a single board
// mutation. The message snapshots the task title at mutation time, so
// an entry stays meaningful after its task is deleted.
type ActivityEntry struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}
