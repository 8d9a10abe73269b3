package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"lumentix/services"
)

type EscrowHandler struct {
	escrow *services.EscrowService
}

func NewEscrowHandler(escrow *services.EscrowService) *EscrowHandler {
	return &EscrowHandler{escrow: escrow}
}

// Initialize - store the platform admin, once
func (h *EscrowHandler) Initialize(e *core.RequestEvent) error {
	var req struct {
		Admin string `json:"admin"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.escrow.Initialize(requestContext(e), req.Admin); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"admin": req.Admin})
}

// CancelEvent - organizer cancels a published event
func (h *EscrowHandler) CancelEvent(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Organizer string `json:"organizer"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.escrow.CancelEvent(requestContext(e), req.Organizer, eventID); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "status": "cancelled"})
}

// CompleteEvent - organizer completes a published event after end time
func (h *EscrowHandler) CompleteEvent(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Organizer string `json:"organizer"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.escrow.CompleteEvent(requestContext(e), req.Organizer, eventID); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "status": "completed"})
}

// ReleaseEscrow - drain a completed event's escrow to the organizer
func (h *EscrowHandler) ReleaseEscrow(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Organizer string `json:"organizer"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	amount, err := h.escrow.ReleaseEscrow(requestContext(e), req.Organizer, eventID)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "amount": amount})
}

// SetPlatformFee - admin sets the purchase fee in basis points
func (h *EscrowHandler) SetPlatformFee(e *core.RequestEvent) error {
	var req struct {
		Admin  string `json:"admin"`
		FeeBps int64  `json:"fee_bps"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.escrow.SetPlatformFee(requestContext(e), req.Admin, req.FeeBps); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"fee_bps": req.FeeBps})
}

// GetPlatformFee - current fee in basis points
func (h *EscrowHandler) GetPlatformFee(e *core.RequestEvent) error {
	feeBps, err := h.escrow.GetPlatformFee(requestContext(e))
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"fee_bps": feeBps})
}

// GetPlatformBalance - accumulated platform fees
func (h *EscrowHandler) GetPlatformBalance(e *core.RequestEvent) error {
	balance, err := h.escrow.GetPlatformBalance(requestContext(e))
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"balance": balance})
}

// WithdrawPlatformFees - admin drains the platform fee balance
func (h *EscrowHandler) WithdrawPlatformFees(e *core.RequestEvent) error {
	var req struct {
		Admin string `json:"admin"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	amount, err := h.escrow.WithdrawPlatformFees(requestContext(e), req.Admin)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"amount": amount})
}
