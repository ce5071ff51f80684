package handlers

import (
	"net/http"

	"github.com/ativ97/battery-management/internal/services"
	"github.com/ativ97/battery-management/pkg/utils"
)

type DashboardHandler struct {
	Reports *services.ReportService
}

func NewDashboardHandler(reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{Reports: reports}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reports.DashboardStats(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) RecentExchanges(w http.ResponseWriter, r *http.Request) {
	exchanges, err := h.Reports.RecentExchanges(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, exchanges)
}
