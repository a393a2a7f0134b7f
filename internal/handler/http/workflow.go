package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/payroll"
	"github.com/omanjaya/sistem-absensi-manufac/internal/handler/http/response"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/workflow"
)

type WorkflowHandler interface {
	BulkApproveLeaves(w http.ResponseWriter, r *http.Request)
	BulkGeneratePayroll(w http.ResponseWriter, r *http.Request)
}

type WorkflowHandlerImpl struct {
	workflowService *workflow.WorkflowService
}

func NewWorkflowHandler(workflowService *workflow.WorkflowService) WorkflowHandler {
	return &WorkflowHandlerImpl{workflowService: workflowService}
}

// BulkApproveLeaves implements WorkflowHandler.
func (h *WorkflowHandlerImpl) BulkApproveLeaves(w http.ResponseWriter, r *http.Request) {
	var req workflow.BulkApproveLeavesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkApproveLeaves decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workflowService.BulkApproveLeaves(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk leave approval completed", result)
}

// BulkGeneratePayroll implements WorkflowHandler.
func (h *WorkflowHandlerImpl) BulkGeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkGeneratePayroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workflowService.BulkGeneratePayroll(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk payroll generation completed", result)
}
