package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/auth"
	"github.com/omanjaya/sistem-absensi-manufac/internal/handler/http/response"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/enrollment"
)

type FaceHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type FaceHandlerImpl struct {
	enrollmentService *enrollment.Service
}

func NewFaceHandler(enrollmentService *enrollment.Service) FaceHandler {
	return &FaceHandlerImpl{enrollmentService: enrollmentService}
}

// targetEmployee resolves which employee a face operation applies to.
// Employees act on themselves; acting on someone else needs the
// enrollment management capability.
func (h *FaceHandlerImpl) targetEmployee(w http.ResponseWriter, r *http.Request) (string, bool) {
	employeeID, role, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return "", false
	}

	target := r.URL.Query().Get("employee_id")
	if target == "" || target == employeeID {
		return employeeID, true
	}

	if !auth.Can(role, auth.CapManageEnrollments) {
		response.Forbidden(w, "You can only manage your own face enrollment")
		return "", false
	}
	return target, true
}

// Register implements FaceHandler.
func (h *FaceHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	target, ok := h.targetEmployee(w, r)
	if !ok {
		return
	}

	var req enrollment.RegisterFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterFace decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.enrollmentService.Register(r.Context(), target, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face registered successfully", nil)
}

// Status implements FaceHandler.
func (h *FaceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	target, ok := h.targetEmployee(w, r)
	if !ok {
		return
	}

	resp, err := h.enrollmentService.Status(r.Context(), target)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Delete implements FaceHandler.
func (h *FaceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	target, ok := h.targetEmployee(w, r)
	if !ok {
		return
	}

	if err := h.enrollmentService.Remove(r.Context(), target); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face enrollment removed successfully", nil)
}
