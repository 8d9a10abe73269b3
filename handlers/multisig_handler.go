package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"lumentix/services"
)

type MultisigHandler struct {
	multisig *services.MultisigService
}

func NewMultisigHandler(multisig *services.MultisigService) *MultisigHandler {
	return &MultisigHandler{multisig: multisig}
}

// SetSigners - organizer configures the signer set and threshold
func (h *MultisigHandler) SetSigners(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Organizer string   `json:"organizer"`
		Signers   []string `json:"signers"`
		Threshold uint32   `json:"threshold"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.multisig.SetSigners(requestContext(e), req.Organizer, eventID, req.Signers, req.Threshold); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"event_id":  eventID,
		"signers":   req.Signers,
		"threshold": req.Threshold,
	})
}

// GetApprovals - configured threshold and current approval count
func (h *MultisigHandler) GetApprovals(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	ctx := requestContext(e)
	config, err := h.multisig.GetConfig(ctx, eventID)
	if err != nil {
		return fail(err)
	}
	count, err := h.multisig.ApprovalCount(ctx, eventID)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"event_id":  eventID,
		"threshold": config.Threshold,
		"approvals": count,
	})
}

// ApproveRelease - signer approves releasing the pooled escrow
func (h *MultisigHandler) ApproveRelease(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Signer string `json:"signer"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.multisig.ApproveRelease(requestContext(e), eventID, req.Signer); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "signer": req.Signer})
}

// RevokeApproval - signer withdraws a previously given approval
func (h *MultisigHandler) RevokeApproval(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	signer := e.Request.PathValue("signer")

	if err := h.multisig.RevokeApproval(requestContext(e), eventID, signer); err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"event_id": eventID, "signer": signer})
}

// DistributeEscrow - release the pooled escrow once the threshold is met
func (h *MultisigHandler) DistributeEscrow(e *core.RequestEvent) error {
	eventID, err := pathID(e, "id")
	if err != nil {
		return apis.NewBadRequestError("Invalid event id", err)
	}

	var req struct {
		Destination string `json:"destination"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	amount, err := h.multisig.DistributeEscrow(requestContext(e), eventID, req.Destination)
	if err != nil {
		return fail(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"event_id":    eventID,
		"destination": req.Destination,
		"amount":      amount,
	})
}
