package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/services"
	"github.com/ativ97/battery-management/pkg/utils"
)

type StockHandler struct {
	Warranty *services.WarrantyService
	Reports  *services.ReportService
}

func NewStockHandler(warranty *services.WarrantyService, reports *services.ReportService) *StockHandler {
	return &StockHandler{Warranty: warranty, Reports: reports}
}

func (h *StockHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	var req models.AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SerialNo == "" || req.ModelType == "" {
		utils.Error(w, http.StatusBadRequest, "serial_no and model_type are required")
		return
	}

	err := h.Warranty.AddInventoryStock(r.Context(), req.SerialNo, req.ModelType, req.DateOfPurchase)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateSerial) {
			utils.Error(w, http.StatusConflict, "Serial number already exists")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// StockLoan books a unit expected from the factory as factory_pending.
func (h *StockHandler) StockLoan(w http.ResponseWriter, r *http.Request) {
	var req models.StockLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SerialNo == "" {
		utils.Error(w, http.StatusBadRequest, "serial_no is required")
		return
	}

	err := h.Warranty.UpsertBattery(r.Context(), req.SerialNo, req.ModelType,
		models.StatusFactoryPending, req.Date, req.Date, "", "", "")
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": models.StatusFactoryPending})
}

func (h *StockHandler) StockReception(w http.ResponseWriter, r *http.Request) {
	var req models.StockReceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SerialNo == "" {
		utils.Error(w, http.StatusBadRequest, "serial_no is required")
		return
	}

	if err := h.Warranty.ProcessStockReception(r.Context(), req.SerialNo, req.ModelType); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func (h *StockHandler) PendingFactoryStock(w http.ResponseWriter, r *http.Request) {
	batteries, err := h.Reports.PendingFactoryStock(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, batteries)
}

func (h *StockHandler) ReceiptHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Reports.StockReceiptHistory(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, history)
}

func (h *StockHandler) InService(w http.ResponseWriter, r *http.Request) {
	batteries, err := h.Reports.BatteriesInService(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, batteries)
}
