package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/internal/cart"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

// CartOwner resolves the cart owner key for the request. Signed-in shoppers
// are keyed by user id; anonymous shoppers by a guest token that the client
// echoes back on subsequent requests. A fresh token is issued when none is
// presented.
func CartOwner(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var ownerID string
			if raw := UserIDFromContext(ctx); raw != "" {
				userID, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
					return
				}
				ownerID = cart.UserOwnerID(userID)
			} else {
				token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
				if token == "" {
					token = uuid.NewString()
				} else if _, err := uuid.Parse(token); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token is malformed"))
					return
				}
				// Echo the token so first-time guests can persist it.
				w.Header().Set(cartTokenHeader, token)
				ownerID = cart.GuestOwnerID(token)
			}

			ctx = WithCartOwner(ctx, ownerID)
			if logg != nil {
				ctx = logg.WithCartOwner(ctx, ownerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
