package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
)

func HealthcheckHandler(conn *postgres.Connection) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"status":   "ok",
			"database": "ok",
			"time":     time.Now().Format(time.RFC3339),
		}

		code := http.StatusOK
		if err := conn.Ping(r.Context()); err != nil {
			logrus.WithError(err).Warn("healthcheck: banco de dados indisponível")
			status["status"] = "degraded"
			status["database"] = "unavailable"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
