package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/api/responses"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/config"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
)

// Pinger is the health check surface of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ecom-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when the backing stores answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ecom-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		for _, dep := range []struct {
			name string
			p    Pinger
		}{
			{"database", dbP},
			{"redis", redisP},
		} {
			if dep.p == nil {
				checks[dep.name] = "skipped"
				continue
			}
			if err := dep.p.Ping(ctx); err != nil {
				checks[dep.name] = "unreachable"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, dep.name+" not ready").WithDetails(checks))
				return
			}
			checks[dep.name] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
