package domain

// EventType names a store mutation.
type EventType string

const (
	EventAdded    EventType = "added"
	EventUpdated  EventType = "updated"
	EventResolved EventType = "resolved"
	EventDeleted  EventType = "deleted"
)

// Event is published synchronously to store subscribers after each applied
// mutation. Comment is a snapshot of the record after the mutation (for
// deletes, the record as it was removed).
type Event struct {
	Type    EventType `json:"type"`
	Comment Comment   `json:"comment"`
}
