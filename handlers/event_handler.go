package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"lumentix/models"
	"lumentix/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// CreateEvent - register a new draft event
func (h *EventHandler) CreateEvent(e *core.RequestEvent) error {
	var req services.CreateEventInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	eventID, err := h.events.CreateEvent(requestContext(e), req)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusCreated, map[string]any{"event_id": eventID})
}

// UpdateStatus - move an event through its lifecycle
func (h *EventHandler) UpdateStatus(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Status string `json:"status"`
		Caller string `json:"caller"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.events.UpdateStatus(requestContext(e), eventID, models.EventStatus(req.Status), req.Caller); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "status": req.Status})
}

// GetEvent - fetch one event record
func (h *EventHandler) GetEvent(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	event, err := h.events.GetEvent(requestContext(e), eventID)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, event)
}

// GetAvailability - remaining purchasable tickets for an event
func (h *EventHandler) GetAvailability(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	available, err := h.events.GetAvailability(requestContext(e), eventID)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "available": available})
}
