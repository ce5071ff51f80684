package handlers

import (
	"net/http"

	"github.com/ativ97/battery-management/internal/health"
	"github.com/ativ97/battery-management/internal/monitoring"
	"github.com/ativ97/battery-management/pkg/utils"
)

type HealthHandler struct {
	Checker   *health.HealthChecker
	Collector *monitoring.Collector
}

func NewHealthHandler(checker *health.HealthChecker, collector *monitoring.Collector) *HealthHandler {
	return &HealthHandler{Checker: checker, Collector: collector}
}

func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// SystemStats backs the admin monitoring panel with host-level numbers.
func (h *HealthHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Collector.Collect(r.Context()))
}
