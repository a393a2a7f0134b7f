package schedule

import (
	"context"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/schedule"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
	employee.EmployeeRepository
}

func NewScheduleService(
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepository: scheduleRepo,
		EmployeeRepository: employeeRepo,
	}
}

// checkConflicts rejects a schedule that overlaps an active one for the
// same employee and weekday.
func (s *ScheduleServiceImpl) checkConflicts(ctx context.Context, employeeID string, weekday int, startTime, endTime, excludeID string) error {
	existing, err := s.ScheduleRepository.ListActiveForEmployeeWeekday(ctx, employeeID, weekday, excludeID)
	if err != nil {
		return err
	}
	if hit := findConflict(existing, startTime, endTime); hit != nil {
		return &schedule.ConflictError{
			ConflictingID: hit.ID,
			Weekday:       hit.Weekday,
			StartTime:     hit.StartTime,
			EndTime:       hit.EndTime,
		}
	}
	return nil
}

// Create implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Create(ctx context.Context, req *schedule.CreateScheduleRequest) (*schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, req.EmployeeID, req.Weekday, req.StartTime, req.EndTime, ""); err != nil {
		return nil, err
	}

	created, err := s.ScheduleRepository.Create(ctx, schedule.Schedule{
		EmployeeID: req.EmployeeID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		IsActive:   true,
	})
	if err != nil {
		return nil, err
	}
	created.EmployeeName = &emp.FullName

	resp := toScheduleResponse(created)
	return &resp, nil
}

// Update implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Update(ctx context.Context, req *schedule.UpdateScheduleRequest) (*schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.ScheduleRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Weekday != nil {
		existing.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		existing.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		existing.EndTime = *req.EndTime
	}
	if req.Location != nil {
		existing.Location = req.Location
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	// A schedule being deactivated cannot conflict with anything.
	if existing.IsActive {
		if err := s.checkConflicts(ctx, existing.EmployeeID, existing.Weekday, existing.StartTime, existing.EndTime, existing.ID); err != nil {
			return nil, err
		}
	}

	if err := s.ScheduleRepository.Update(ctx, existing); err != nil {
		return nil, err
	}

	resp := toScheduleResponse(existing)
	return &resp, nil
}

// GetByID implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetByID(ctx context.Context, id string) (*schedule.ScheduleResponse, error) {
	found, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toScheduleResponse(found)
	return &resp, nil
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context, filter *schedule.ScheduleFilter) (*schedule.ListSchedulesResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	schedules, total, err := s.ScheduleRepository.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	resp := &schedule.ListSchedulesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Schedules:  make([]schedule.ScheduleResponse, 0, len(schedules)),
	}
	for _, item := range schedules {
		resp.Schedules = append(resp.Schedules, toScheduleResponse(item))
	}

	return resp, nil
}

// Delete implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.ScheduleRepository.Delete(ctx, id)
}

// ConflictReport implements schedule.ScheduleService. It scans every
// active schedule and reports each overlapping pair once.
func (s *ScheduleServiceImpl) ConflictReport(ctx context.Context) (*schedule.ConflictReportResponse, error) {
	all, err := s.ScheduleRepository.ListAllActive(ctx)
	if err != nil {
		return nil, err
	}

	// Group per employee and weekday; rows arrive sorted by employee,
	// weekday, start time.
	type groupKey struct {
		employeeID string
		weekday    int
	}
	groups := make(map[groupKey][]schedule.Schedule)
	for _, item := range all {
		key := groupKey{employeeID: item.EmployeeID, weekday: item.Weekday}
		groups[key] = append(groups[key], item)
	}

	report := &schedule.ConflictReportResponse{Conflicts: []schedule.Conflict{}}
	for key, items := range groups {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				if !Overlaps(items[i].StartTime, items[i].EndTime, items[j].StartTime, items[j].EndTime) {
					continue
				}
				report.Conflicts = append(report.Conflicts, schedule.Conflict{
					EmployeeID:   key.employeeID,
					EmployeeName: items[i].EmployeeName,
					Weekday:      key.weekday,
					ScheduleA:    items[i].ID,
					ScheduleB:    items[j].ID,
					RangeA:       items[i].StartTime + "-" + items[i].EndTime,
					RangeB:       items[j].StartTime + "-" + items[j].EndTime,
				})
			}
		}
	}
	report.Total = len(report.Conflicts)

	return report, nil
}

func toScheduleResponse(s schedule.Schedule) schedule.ScheduleResponse {
	return schedule.ScheduleResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Weekday:      s.Weekday,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Location:     s.Location,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}
