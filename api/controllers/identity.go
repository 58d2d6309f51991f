package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/RedaKaafarani1/ecomwebsite/api/middleware"
)

// viewerID resolves the signed-in shopper from the request context, or
// uuid.Nil for anonymous requests. Services gate the operations that demand
// an account.
func viewerID(ctx context.Context) uuid.UUID {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
