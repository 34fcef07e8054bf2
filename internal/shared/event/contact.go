package event

import "time"

const (
	ContactCreatedDestination string = "contact.created"
	ContactUpdatedDestination string = "contact.updated"
	ContactDeletedDestination string = "contact.deleted"
)

// ContactMessage is the payload of every contact event. Deleted events carry
// the contact as it was before removal.
type ContactMessage struct {
	EventID    int64     `json:"event_id"`
	ContactID  int64     `json:"contact_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	OccurredAt time.Time `json:"occurred_at"`
}
