package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/services"
	"github.com/ativ97/battery-management/pkg/utils"
)

// HistoryHandler serves the point lookups behind the search tabs: a serial's
// record and audit trail, a customer's batteries and history.
type HistoryHandler struct {
	Reports *services.ReportService
}

func NewHistoryHandler(reports *services.ReportService) *HistoryHandler {
	return &HistoryHandler{Reports: reports}
}

func (h *HistoryHandler) BatteryBySerial(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]

	battery, err := h.Reports.BatteryBySerial(r.Context(), serial)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Battery not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"battery": battery,
		"age":     services.BatteryAge(battery.DateOfPurchase),
	})
}

func (h *HistoryHandler) BatteryHistory(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]

	history, err := h.Reports.BatteryHistory(r.Context(), serial)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, history)
}

func (h *HistoryHandler) CustomerByPhone(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	customer, err := h.Reports.CustomerByPhone(r.Context(), phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Customer not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *HistoryHandler) CustomerBatteries(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	batteries, err := h.Reports.CustomerBatteries(r.Context(), phone)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, batteries)
}

func (h *HistoryHandler) CustomerHistory(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	history, err := h.Reports.CustomerHistory(r.Context(), phone)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, history)
}

func (h *HistoryHandler) ReadyForPickup(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	batteries, err := h.Reports.ReadyForPickup(r.Context(), phone)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, batteries)
}
