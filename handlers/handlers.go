// Package handlers exposes the core operations over HTTP. Handlers are
// thin: parse the request, thread the caller's bearer token to the
// authorization layer, call the service, and map sentinel errors to
// HTTP responses.
package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"lumentix/auth"
	"lumentix/internal/status"
)

// requestContext attaches the caller's bearer token, if any, to the
// request context for the authorizer.
func requestContext(e *core.RequestEvent) context.Context {
	ctx := e.Request.Context()
	header := e.Request.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		ctx = auth.WithToken(ctx, token)
	}
	return ctx
}

func pathID(e *core.RequestEvent, name string) (uint64, error) {
	return strconv.ParseUint(e.Request.PathValue(name), 10, 64)
}

// fail translates a sentinel error into an HTTP error response.
func fail(err error) error {
	switch {
	case errors.Is(err, status.ErrEventNotFound),
		errors.Is(err, status.ErrTicketNotFound),
		errors.Is(err, status.ErrEscrowNotConfigured):
		return apis.NewNotFoundError(err.Error(), err)
	case errors.Is(err, status.ErrUnauthorized):
		return apis.NewUnauthorizedError(err.Error(), err)
	default:
		return apis.NewBadRequestError(err.Error(), err)
	}
}
