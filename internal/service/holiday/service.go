package holiday

import (
	"context"
	"strings"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	loc *time.Location
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, loc *time.Location) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: holidayRepo, loc: loc}
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req *holiday.CreateHolidayRequest) (*holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		Name:             req.Name,
		Type:             holiday.Type(strings.ToLower(req.Type)),
		StartDate:        start,
		EndDate:          end,
		AppliesToAll:     req.AppliesToAll,
		Departments:      req.Departments,
		Roles:            req.Roles,
		AllowAttendance:  req.AllowAttendance,
		OvertimeEligible: req.OvertimeEligible,
		Description:      req.Description,
	})
	if err != nil {
		return nil, err
	}

	resp := toHolidayResponse(created)
	return &resp, nil
}

// Update implements holiday.HolidayService.
func (s *HolidayServiceImpl) Update(ctx context.Context, req *holiday.UpdateHolidayRequest) (*holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.HolidayRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Type != nil {
		existing.Type = holiday.Type(strings.ToLower(*req.Type))
	}
	if req.StartDate != nil {
		start, _ := time.ParseInLocation("2006-01-02", *req.StartDate, s.loc)
		existing.StartDate = start
	}
	if req.EndDate != nil {
		end, _ := time.ParseInLocation("2006-01-02", *req.EndDate, s.loc)
		existing.EndDate = end
	}
	if req.AppliesToAll != nil {
		existing.AppliesToAll = *req.AppliesToAll
	}
	if req.Departments != nil {
		existing.Departments = *req.Departments
	}
	if req.Roles != nil {
		existing.Roles = *req.Roles
	}
	if req.AllowAttendance != nil {
		existing.AllowAttendance = *req.AllowAttendance
	}
	if req.OvertimeEligible != nil {
		existing.OvertimeEligible = *req.OvertimeEligible
	}
	if req.Description != nil {
		existing.Description = req.Description
	}

	if err := s.HolidayRepository.Update(ctx, existing); err != nil {
		return nil, err
	}

	resp := toHolidayResponse(existing)
	return &resp, nil
}

// GetByID implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetByID(ctx context.Context, id string) (*holiday.HolidayResponse, error) {
	found, err := s.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toHolidayResponse(found)
	return &resp, nil
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, filter *holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, toHolidayResponse(h))
	}

	return responses, nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return s.HolidayRepository.Delete(ctx, id)
}

// IsNonWorkingDay implements holiday.HolidayService. A date is blocked
// when any covering holiday applies to the scope and does not allow
// attendance.
func (s *HolidayServiceImpl) IsNonWorkingDay(ctx context.Context, date time.Time, department, role string) (bool, error) {
	holidays, err := s.HolidayRepository.ListBetween(ctx, date, date)
	if err != nil {
		return false, err
	}

	for _, h := range holidays {
		if h.Covers(date) && h.AppliesTo(department, role) && !h.AllowAttendance {
			return true, nil
		}
	}

	return false, nil
}

func toHolidayResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:               h.ID,
		Name:             h.Name,
		Type:             string(h.Type),
		StartDate:        h.StartDate.Format("2006-01-02"),
		EndDate:          h.EndDate.Format("2006-01-02"),
		AppliesToAll:     h.AppliesToAll,
		Departments:      h.Departments,
		Roles:            h.Roles,
		AllowAttendance:  h.AllowAttendance,
		OvertimeEligible: h.OvertimeEligible,
		Description:      h.Description,
		CreatedAt:        h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        h.UpdatedAt.Format(time.RFC3339),
	}
}
