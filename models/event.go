package models

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// Valid reports whether s is one of the four lifecycle states.
func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventCancelled, EventCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// next. The time gate on completion (end time passed) is checked by the
// service, not here.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch {
	case s == EventDraft && next == EventPublished:
		return true
	case s == EventPublished && next == EventCancelled:
		return true
	case s == EventPublished && next == EventCompleted:
		return true
	}
	return false
}

type Event struct {
	ID          uint64      `json:"id"`
	Organizer   string      `json:"organizer"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	StartTime   int64       `json:"start_time"`
	EndTime     int64       `json:"end_time"`
	TicketPrice int64       `json:"ticket_price"`
	MaxTickets  uint32      `json:"max_tickets"`
	TicketsSold uint32      `json:"tickets_sold"`
	Status      EventStatus `json:"status"`
}

// Availability returns the number of tickets still purchasable.
func (e *Event) Availability() uint32 {
	if e.TicketsSold >= e.MaxTickets {
		return 0
	}
	return e.MaxTickets - e.TicketsSold
}
