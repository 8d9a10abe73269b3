package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventStatus_CanTransitionTo(t *testing.T) {
	allowed := map[EventStatus][]EventStatus{
		EventDraft:     {EventPublished},
		EventPublished: {EventCancelled, EventCompleted},
		EventCancelled: {},
		EventCompleted: {},
	}

	all := []EventStatus{EventDraft, EventPublished, EventCancelled, EventCompleted}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, legal := range allowed[from] {
				if to == legal {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestEventStatus_Valid(t *testing.T) {
	assert.True(t, EventDraft.Valid())
	assert.True(t, EventCompleted.Valid())
	assert.False(t, EventStatus("archived").Valid())
	assert.False(t, EventStatus("").Valid())
}

func TestEvent_Availability(t *testing.T) {
	event := &Event{MaxTickets: 10, TicketsSold: 4}
	assert.Equal(t, uint32(6), event.Availability())

	event.TicketsSold = 10
	assert.Equal(t, uint32(0), event.Availability())

	// Sold may exceed capacity transiently; availability never underflows.
	event.TicketsSold = 12
	assert.Equal(t, uint32(0), event.Availability())
}
