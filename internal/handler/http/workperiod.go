package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
	"github.com/omanjaya/sistem-absensi-manufac/internal/handler/http/response"
)

type WorkPeriodHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type WorkPeriodHandlerImpl struct {
	workPeriodService workperiod.WorkPeriodService
}

func NewWorkPeriodHandler(workPeriodService workperiod.WorkPeriodService) WorkPeriodHandler {
	return &WorkPeriodHandlerImpl{workPeriodService: workPeriodService}
}

// Create implements WorkPeriodHandler.
func (h *WorkPeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req workperiod.CreateWorkPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateWorkPeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.workPeriodService.Create(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work period created successfully", resp)
}

// Update implements WorkPeriodHandler.
func (h *WorkPeriodHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work period ID is required", nil)
		return
	}

	var req workperiod.UpdateWorkPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateWorkPeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	resp, err := h.workPeriodService.Update(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work period updated successfully", resp)
}

// GetByID implements WorkPeriodHandler.
func (h *WorkPeriodHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work period ID is required", nil)
		return
	}

	resp, err := h.workPeriodService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements WorkPeriodHandler.
func (h *WorkPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.workPeriodService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Delete implements WorkPeriodHandler.
func (h *WorkPeriodHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work period ID is required", nil)
		return
	}

	if err := h.workPeriodService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work period deleted successfully", nil)
}
