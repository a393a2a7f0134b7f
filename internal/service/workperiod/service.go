package workperiod

import (
	"context"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
	"github.com/shopspring/decimal"
)

type WorkPeriodServiceImpl struct {
	workperiod.WorkPeriodRepository
	loc *time.Location
}

func NewWorkPeriodService(workPeriodRepo workperiod.WorkPeriodRepository, loc *time.Location) workperiod.WorkPeriodService {
	return &WorkPeriodServiceImpl{WorkPeriodRepository: workPeriodRepo, loc: loc}
}

// Create implements workperiod.WorkPeriodService.
func (s *WorkPeriodServiceImpl) Create(ctx context.Context, req *workperiod.CreateWorkPeriodRequest) (*workperiod.WorkPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	effectiveFrom, _ := time.ParseInLocation("2006-01-02", req.EffectiveFrom, s.loc)
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		t, _ := time.ParseInLocation("2006-01-02", *req.EffectiveTo, s.loc)
		effectiveTo = &t
	}

	multiplier := decimal.NewFromInt(1)
	if req.OvertimeMultiplier != nil {
		multiplier, _ = decimal.NewFromString(*req.OvertimeMultiplier)
	}

	created, err := s.WorkPeriodRepository.Create(ctx, workperiod.WorkPeriod{
		Name:                 req.Name,
		Schedule:             req.Schedule,
		Breaks:               req.Breaks,
		LateToleranceMinutes: req.LateToleranceMinutes,
		EarlyLeaveMinutes:    req.EarlyLeaveMinutes,
		Overtime: workperiod.OvertimeSettings{
			Enabled:        req.OvertimeEnabled,
			Multiplier:     multiplier,
			MaxHoursPerDay: req.OvertimeMaxHours,
		},
		Departments:   req.Departments,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		IsActive:      true,
	})
	if err != nil {
		return nil, err
	}

	resp := toWorkPeriodResponse(created)
	return &resp, nil
}

// Update implements workperiod.WorkPeriodService.
func (s *WorkPeriodServiceImpl) Update(ctx context.Context, req *workperiod.UpdateWorkPeriodRequest) (*workperiod.WorkPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.WorkPeriodRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Schedule != nil {
		existing.Schedule = *req.Schedule
	}
	if req.Breaks != nil {
		existing.Breaks = *req.Breaks
	}
	if req.LateToleranceMinutes != nil {
		existing.LateToleranceMinutes = *req.LateToleranceMinutes
	}
	if req.EarlyLeaveMinutes != nil {
		existing.EarlyLeaveMinutes = *req.EarlyLeaveMinutes
	}
	if req.OvertimeEnabled != nil {
		existing.Overtime.Enabled = *req.OvertimeEnabled
	}
	if req.OvertimeMultiplier != nil {
		multiplier, _ := decimal.NewFromString(*req.OvertimeMultiplier)
		existing.Overtime.Multiplier = multiplier
	}
	if req.OvertimeMaxHours != nil {
		existing.Overtime.MaxHoursPerDay = *req.OvertimeMaxHours
	}
	if req.Departments != nil {
		existing.Departments = *req.Departments
	}
	if req.EffectiveTo != nil {
		t, _ := time.ParseInLocation("2006-01-02", *req.EffectiveTo, s.loc)
		existing.EffectiveTo = &t
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.WorkPeriodRepository.Update(ctx, existing); err != nil {
		return nil, err
	}

	resp := toWorkPeriodResponse(existing)
	return &resp, nil
}

// GetByID implements workperiod.WorkPeriodService.
func (s *WorkPeriodServiceImpl) GetByID(ctx context.Context, id string) (*workperiod.WorkPeriodResponse, error) {
	found, err := s.WorkPeriodRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWorkPeriodResponse(found)
	return &resp, nil
}

// List implements workperiod.WorkPeriodService.
func (s *WorkPeriodServiceImpl) List(ctx context.Context) ([]workperiod.WorkPeriodResponse, error) {
	periods, err := s.WorkPeriodRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]workperiod.WorkPeriodResponse, 0, len(periods))
	for _, wp := range periods {
		responses = append(responses, toWorkPeriodResponse(wp))
	}

	return responses, nil
}

// Delete implements workperiod.WorkPeriodService.
func (s *WorkPeriodServiceImpl) Delete(ctx context.Context, id string) error {
	return s.WorkPeriodRepository.Delete(ctx, id)
}

// Resolve implements workperiod.WorkPeriodService. Department-scoped
// periods win over catch-all ones; within a tier the most recently
// effective period applies.
func (s *WorkPeriodServiceImpl) Resolve(ctx context.Context, department string, date time.Time) (*workperiod.WorkPeriod, error) {
	periods, err := s.WorkPeriodRepository.ListActiveOn(ctx, date)
	if err != nil {
		return nil, err
	}

	var catchAll *workperiod.WorkPeriod
	for i := range periods {
		wp := &periods[i]
		if !wp.AppliesTo(department, date) {
			continue
		}
		if len(wp.Departments) > 0 {
			return wp, nil
		}
		if catchAll == nil {
			catchAll = wp
		}
	}
	if catchAll != nil {
		return catchAll, nil
	}

	return nil, workperiod.ErrNoApplicablePeriod
}

func toWorkPeriodResponse(wp workperiod.WorkPeriod) workperiod.WorkPeriodResponse {
	var effectiveTo *string
	if wp.EffectiveTo != nil {
		formatted := wp.EffectiveTo.Format("2006-01-02")
		effectiveTo = &formatted
	}

	return workperiod.WorkPeriodResponse{
		ID:                   wp.ID,
		Name:                 wp.Name,
		Schedule:             wp.Schedule,
		Breaks:               wp.Breaks,
		LateToleranceMinutes: wp.LateToleranceMinutes,
		EarlyLeaveMinutes:    wp.EarlyLeaveMinutes,
		OvertimeEnabled:      wp.Overtime.Enabled,
		OvertimeMultiplier:   wp.Overtime.Multiplier.String(),
		OvertimeMaxHours:     wp.Overtime.MaxHoursPerDay,
		Departments:          wp.Departments,
		EffectiveFrom:        wp.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:          effectiveTo,
		IsActive:             wp.IsActive,
		CreatedAt:            wp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            wp.UpdatedAt.Format(time.RFC3339),
	}
}
