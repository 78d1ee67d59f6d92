package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rmoralesdev/salon-backoffice/api/responses"
	"github.com/rmoralesdev/salon-backoffice/pkg/config"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Salon-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Salon-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "database not wired"))
			return
		}
		if err := dbP.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"status":   "ready",
			"database": "ok",
		})
	}
}
