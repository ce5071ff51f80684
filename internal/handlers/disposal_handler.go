package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/services"
	"github.com/ativ97/battery-management/internal/timeutil"
	"github.com/ativ97/battery-management/pkg/utils"
)

type DisposalHandler struct {
	Service *services.DisposalService
}

func NewDisposalHandler(s *services.DisposalService) *DisposalHandler {
	return &DisposalHandler{Service: s}
}

func (h *DisposalHandler) RegisterScrap(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterScrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SerialNo == "" {
		utils.Error(w, http.StatusBadRequest, "serial_no is required")
		return
	}

	if err := h.Service.RegisterScrap(r.Context(), &req); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSerial) {
			utils.Error(w, http.StatusConflict, "Serial already booked as scrap")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"status": "scrapped"})
}

func (h *DisposalHandler) ListScrap(w http.ResponseWriter, r *http.Request) {
	scraps, err := h.Service.ListScrap(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, scraps)
}

func (h *DisposalHandler) ListChallan(w http.ResponseWriter, r *http.Request) {
	challans, err := h.Service.ListChallan(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, challans)
}

func (h *DisposalHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	archived, err := h.Service.ListArchive(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, archived)
}

func (h *DisposalHandler) MoveToChallan(w http.ResponseWriter, r *http.Request) {
	var req models.MoveToChallanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	moved, err := h.Service.MoveScrapToChallan(r.Context(), req.Serials)
	if err != nil {
		if errors.Is(err, services.ErrNoScrapSelected) {
			utils.Error(w, http.StatusBadRequest, "No serials selected")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"moved": moved})
}

func (h *DisposalHandler) ClearChallan(w http.ResponseWriter, r *http.Request) {
	archived, err := h.Service.ClearChallanToArchive(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"archived": archived})
}

func (h *DisposalHandler) ChallanPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Service.ChallanPDF(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="challan-%s.pdf"`, timeutil.Today()))
	w.Write(pdf)
}
