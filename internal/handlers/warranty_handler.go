package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ativ97/battery-management/internal/cache"
	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/services"
	"github.com/ativ97/battery-management/pkg/utils"
)

// WarrantyHandler fronts the lifecycle engine. Claim and pickup mutations
// are gated on a verified OTP session; stock-side operations are not.
type WarrantyHandler struct {
	Warranty *services.WarrantyService
	OTP      *services.OTPService
	Reports  *services.ReportService
}

func NewWarrantyHandler(warranty *services.WarrantyService, otp *services.OTPService, reports *services.ReportService) *WarrantyHandler {
	return &WarrantyHandler{Warranty: warranty, OTP: otp, Reports: reports}
}

func (h *WarrantyHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Phone == "" {
		utils.Error(w, http.StatusBadRequest, "phone is required")
		return
	}

	resp, err := h.OTP.SendOTP(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *WarrantyHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ok, err := h.OTP.VerifyOTP(r.Context(), req.SessionID, req.OTP)
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			utils.Error(w, http.StatusNotFound, "Verification session not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"verified": ok})
}

// requireVerified resolves the session or writes the error response.
func (h *WarrantyHandler) requireVerified(w http.ResponseWriter, r *http.Request, sessionID string) bool {
	_, err := h.OTP.RequireVerified(r.Context(), sessionID)
	if err == nil {
		return true
	}
	if errors.Is(err, cache.ErrSessionNotFound) {
		utils.Error(w, http.StatusNotFound, "Verification session not found")
	} else if errors.Is(err, services.ErrSessionNotVerified) {
		utils.Error(w, http.StatusForbidden, "Customer verification required")
	} else {
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
	return false
}

func (h *WarrantyHandler) NewExchange(w http.ResponseWriter, r *http.Request) {
	var req models.NewExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CustomerPhone == "" || req.NewSerial == "" {
		utils.Error(w, http.StatusBadRequest, "customer_phone and new_serial are required")
		return
	}
	if !h.requireVerified(w, r, req.SessionID) {
		return
	}

	if err := h.Warranty.ProcessNewBatteryExchange(r.Context(), &req); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (h *WarrantyHandler) ServiceEntry(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CustomerPhone == "" || req.BatterySerial == "" {
		utils.Error(w, http.StatusBadRequest, "customer_phone and battery_serial are required")
		return
	}
	if !h.requireVerified(w, r, req.SessionID) {
		return
	}

	if err := h.Warranty.ProcessServiceEntry(r.Context(), &req); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (h *WarrantyHandler) ReturnToCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.requireVerified(w, r, req.SessionID) {
		return
	}

	err := h.Warranty.ProcessReturnToCustomer(r.Context(), req.SerialNo, req.Phone, req.ReturnLoaner)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Battery not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "returned"})
}

func (h *WarrantyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Warranty.UpdateBatteryStatus(r.Context(), serial, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			utils.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "Battery not found")
		default:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// Receipt returns the data the UI renders as the printed exchange receipt.
func (h *WarrantyHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]

	summary, err := h.Reports.ReceiptData(r.Context(), serial)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Battery not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
