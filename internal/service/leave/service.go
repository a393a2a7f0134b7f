package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/audit"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/leave"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employee.EmployeeRepository
	notifier notification.NotificationService
	audits   audit.AuditRepository
	loc      *time.Location

	now func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.NotificationService,
	audits audit.AuditRepository,
	loc *time.Location,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository:    leaveRepo,
		EmployeeRepository: employeeRepo,
		notifier:           notifier,
		audits:             audits,
		loc:                loc,
		now:                time.Now,
	}
}

func (s *LeaveServiceImpl) claimsFromContext(ctx context.Context) (employeeID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, _ = claims["employee_id"].(string)
	role, _ = claims["role"].(string)
	if employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, role, nil
}

// Create implements leave.LeaveService. The requester is always the
// authenticated employee; overlapping non-rejected requests are denied.
func (s *LeaveServiceImpl) Create(ctx context.Context, req *leave.CreateLeaveRequest) (*leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employeeID, _, err := s.claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	overlaps, err := s.LeaveRepository.HasOverlap(ctx, emp.ID, start, end, "")
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, leave.ErrLeaveOverlaps
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		EmployeeID: emp.ID,
		Type:       leave.Type(strings.ToLower(req.Type)),
		StartDate:  start,
		EndDate:    end,
		TotalDays:  req.TotalDays(),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	created.EmployeeName = &emp.FullName

	resp := toLeaveResponse(created)
	return &resp, nil
}

// Update implements leave.LeaveService. Only the owner can edit, and
// only while the request is still pending.
func (s *LeaveServiceImpl) Update(ctx context.Context, req *leave.UpdateLeaveRequest) (*leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employeeID, role, err := s.claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing.EmployeeID != employeeID && role != string(employee.RoleAdmin) {
		return nil, leave.ErrLeaveNotOwned
	}
	if existing.Status != leave.StatusPending {
		return nil, leave.ErrLeaveNotPending
	}

	if req.Type != nil {
		existing.Type = leave.Type(strings.ToLower(*req.Type))
	}
	if req.StartDate != nil {
		start, _ := time.ParseInLocation("2006-01-02", *req.StartDate, s.loc)
		existing.StartDate = start
	}
	if req.EndDate != nil {
		end, _ := time.ParseInLocation("2006-01-02", *req.EndDate, s.loc)
		existing.EndDate = end
	}
	if req.Reason != nil {
		existing.Reason = *req.Reason
	}
	if existing.EndDate.Before(existing.StartDate) {
		return nil, fmt.Errorf("end_date must not be before start_date")
	}
	existing.TotalDays = int(existing.EndDate.Sub(existing.StartDate).Hours()/24) + 1

	overlaps, err := s.LeaveRepository.HasOverlap(ctx, existing.EmployeeID, existing.StartDate, existing.EndDate, existing.ID)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, leave.ErrLeaveOverlaps
	}

	if err := s.LeaveRepository.Update(ctx, existing); err != nil {
		return nil, err
	}

	resp := toLeaveResponse(existing)
	return &resp, nil
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, id string) (*leave.LeaveResponse, error) {
	found, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toLeaveResponse(found)
	return &resp, nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter *leave.LeaveFilter) (*leave.ListLeavesResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	leaves, total, err := s.LeaveRepository.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	resp := &leave.ListLeavesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Leaves:     make([]leave.LeaveResponse, 0, len(leaves)),
	}
	for _, item := range leaves {
		resp.Leaves = append(resp.Leaves, toLeaveResponse(item))
	}

	return resp, nil
}

// Delete implements leave.LeaveService. Pending requests only.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	employeeID, role, err := s.claimsFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.EmployeeID != employeeID && role != string(employee.RoleAdmin) {
		return leave.ErrLeaveNotOwned
	}
	if existing.Status != leave.StatusPending {
		return leave.ErrLeaveNotPending
	}

	return s.LeaveRepository.Delete(ctx, id)
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req *leave.ReviewLeaveRequest) (*leave.LeaveResponse, error) {
	return s.review(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req *leave.ReviewLeaveRequest) (*leave.LeaveResponse, error) {
	return s.review(ctx, req, leave.StatusRejected)
}

func (s *LeaveServiceImpl) review(ctx context.Context, req *leave.ReviewLeaveRequest, verdict leave.Status) (*leave.LeaveResponse, error) {
	reviewerID, _, err := s.claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing.Status != leave.StatusPending {
		return nil, leave.ErrLeaveNotPending
	}

	nowLocal := s.now().In(s.loc)
	existing.Status = verdict
	existing.ReviewerID = &reviewerID
	existing.ReviewerNotes = req.Notes
	existing.ReviewedAt = &nowLocal

	if err := s.LeaveRepository.Update(ctx, existing); err != nil {
		return nil, err
	}

	action := "leave.approve"
	notifType := notification.TypeLeaveApproved
	title := "Leave approved"
	if verdict == leave.StatusRejected {
		action = "leave.reject"
		notifType = notification.TypeLeaveRejected
		title = "Leave rejected"
	}

	s.recordAudit(ctx, action, existing.ID, map[string]interface{}{
		"verdict":     string(verdict),
		"employee_id": existing.EmployeeID,
	})

	n := notification.Notification{
		RecipientID: existing.EmployeeID,
		SenderID:    &reviewerID,
		Type:        notifType,
		Title:       title,
		Message: fmt.Sprintf("Your %s leave request (%s to %s) has been %s",
			existing.Type,
			existing.StartDate.Format("2006-01-02"),
			existing.EndDate.Format("2006-01-02"),
			verdict),
		Reference: &notification.Reference{Kind: notification.RefLeave, ID: existing.ID},
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to deliver leave notification", "error", err)
	}

	resp := toLeaveResponse(existing)
	return &resp, nil
}

func (s *LeaveServiceImpl) recordAudit(ctx context.Context, action, leaveID string, detail map[string]interface{}) {
	actorID, _, err := s.claimsFromContext(ctx)
	if err != nil {
		actorID = ""
	}

	entry := audit.Entry{
		ActorID:   actorID,
		Action:    action,
		Reference: audit.Reference{Kind: audit.RefLeave, ID: leaveID},
		Detail:    detail,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to record audit entry", "action", action, "error", err)
	}
}

func toLeaveResponse(lv leave.Leave) leave.LeaveResponse {
	var reviewedAt *string
	if lv.ReviewedAt != nil {
		formatted := lv.ReviewedAt.Format(time.RFC3339)
		reviewedAt = &formatted
	}

	return leave.LeaveResponse{
		ID:            lv.ID,
		EmployeeID:    lv.EmployeeID,
		EmployeeName:  lv.EmployeeName,
		Type:          string(lv.Type),
		StartDate:     lv.StartDate.Format("2006-01-02"),
		EndDate:       lv.EndDate.Format("2006-01-02"),
		TotalDays:     lv.TotalDays,
		Reason:        lv.Reason,
		Status:        string(lv.Status),
		ReviewerID:    lv.ReviewerID,
		ReviewerNotes: lv.ReviewerNotes,
		ReviewedAt:    reviewedAt,
		CreatedAt:     lv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     lv.UpdatedAt.Format(time.RFC3339),
	}
}
