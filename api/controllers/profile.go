package controllers

import (
	"net/http"

	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/api/validators"
	customersvc "github.com/RedaKaafarani1/ecomwebsite/internal/customers"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
)

type updateProfilePayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// ProfileGet returns the saved checkout details for the signed-in shopper.
func ProfileGet(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		profile, err := svc.Get(ctx, viewerID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// ProfileUpdate saves checkout details for reuse. Blank fields stay blank;
// only filled fields are validated.
func ProfileUpdate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload updateProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := svc.Update(ctx, viewerID(ctx), customersvc.UpdateProfileInput{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Address:   payload.Address,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
