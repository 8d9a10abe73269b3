package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"lumentix/services"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// PurchaseTicket - buy a ticket on a published event
func (h *TicketHandler) PurchaseTicket(e *core.RequestEvent) error {
	var req struct {
		Buyer   string `json:"buyer"`
		EventID uint64 `json:"event_id"`
		Amount  int64  `json:"amount"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticketID, err := h.tickets.PurchaseTicket(requestContext(e), req.Buyer, req.EventID, req.Amount)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusCreated, map[string]any{"ticket_id": ticketID, "event_id": req.EventID})
}

// GetTicket - fetch one ticket record
func (h *TicketHandler) GetTicket(e *core.RequestEvent) error {
	ticketID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid ticket id", err)
	}

	ticket, err := h.tickets.GetTicket(requestContext(e), ticketID)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, ticket)
}

// UseTicket - check a ticket in at the venue
func (h *TicketHandler) UseTicket(e *core.RequestEvent) error {
	ticketID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid ticket id", err)
	}

	var req struct {
		Caller string `json:"caller"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.tickets.UseTicket(requestContext(e), ticketID, req.Caller); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"ticket_id": ticketID, "used": true})
}

// TransferTicket - hand a ticket to another principal
func (h *TicketHandler) TransferTicket(e *core.RequestEvent) error {
	ticketID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid ticket id", err)
	}

	var req struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.tickets.TransferTicket(requestContext(e), ticketID, req.From, req.To); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"ticket_id": ticketID, "owner": req.To})
}

// RefundTicket - refund an unused ticket of a cancelled event
func (h *TicketHandler) RefundTicket(e *core.RequestEvent) error {
	ticketID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid ticket id", err)
	}

	var req struct {
		Buyer string `json:"buyer"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.tickets.RefundTicket(requestContext(e), ticketID, req.Buyer); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"ticket_id": ticketID, "refunded": true})
}

// AddValidator - register a check-in validator for an event
func (h *TicketHandler) AddValidator(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Caller    string `json:"caller"`
		Validator string `json:"validator"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.tickets.AddValidator(requestContext(e), req.Caller, eventID, req.Validator); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "validator": req.Validator})
}

// RemoveValidator - drop a validator; the acting organizer comes from
// the caller query parameter
func (h *TicketHandler) RemoveValidator(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	validator := e.Request.PathValue("principal")
	caller := e.Request.URL.Query().Get("caller")

	if err := h.tickets.RemoveValidator(requestContext(e), caller, eventID, validator); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "validator": validator})
}

// IsAuthorizedValidator - membership test for the validator set
func (h *TicketHandler) IsAuthorizedValidator(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	principal := e.Request.PathValue("principal")

	authorized, err := h.tickets.IsAuthorizedValidator(requestContext(e), eventID, principal)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"event_id":   eventID,
		"principal":  principal,
		"authorized": authorized,
	})
}
