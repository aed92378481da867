package api

import (
	"net/http"
	"time"

	"campus-hub/agora/internal/db"
	"campus-hub/agora/internal/models/dtos"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(deps *Dependencies, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		dbStatus := "ok"
		if db.DB != nil {
			if err := db.DB.PingContext(r.Context()); err != nil {
				dbStatus = "down"
			}
		} else {
			dbStatus = "down"
		}

		cacheStatus := "ok"
		deps.Cache.Set(r.Context(), "healthcheck:probe", "ok", 10*time.Second)
		if _, ok := deps.Cache.Get(r.Context(), "healthcheck:probe"); !ok {
			cacheStatus = "down"
		}

		status := "ok"
		if dbStatus != "ok" {
			status = "down"
		}

		resp := dtos.HealthResponse{
			Status:   status,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Database: dbStatus,
			Cache:    cacheStatus,
			Latency:  time.Since(started) / time.Millisecond,
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		respondWithSuccess(w, code, &resp)
	}
}
