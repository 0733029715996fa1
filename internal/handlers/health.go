package handlers

import (
	"context"
	"net/http"
	"time"

	"formulator/internal/logger"
	"formulator/internal/utils/helpers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger — то, что умеет проверить соединение с базой (pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz
// @Summary      Проверка живости
// @Tags         system
// @Produce      json
// @Success      200  {object}  helpers.Response
// @Failure      503  {object}  helpers.Response
// @Router       /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.WithCtx(r.Context()).Error("healthz: база недоступна", zap.Error(err))
		helpers.Error(w, http.StatusServiceUnavailable, "База данных недоступна")
		return
	}
	helpers.Message(w, http.StatusOK, "ok")
}

// Metrics отдаёт метрики Prometheus.
func (h *HealthHandler) Metrics() http.Handler {
	return promhttp.Handler()
}
