package enrollment

import (
	"context"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/face"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
)

type RegisterFaceRequest struct {
	Photo string `json:"photo"`
}

func (r *RegisterFaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Photo) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StatusResponse struct {
	EmployeeID string  `json:"employee_id"`
	Registered bool    `json:"registered"`
	EnrolledAt *string `json:"enrolled_at,omitempty"`
}

type faceClient interface {
	Register(ctx context.Context, userID string, photo string) error
	Status(ctx context.Context, userID string) (*face.EnrollmentStatus, error)
	Delete(ctx context.Context, userID string) error
}

// Service manages face enrollment. The face recognition service owns
// the embeddings; the employees table only carries the registered flag
// that gates clock events.
type Service struct {
	faces     faceClient
	employees employee.EmployeeRepository
}

func NewService(faces faceClient, employees employee.EmployeeRepository) *Service {
	return &Service{faces: faces, employees: employees}
}

// Register enrolls the employee's face and flips the registered flag.
func (s *Service) Register(ctx context.Context, employeeID string, req *RegisterFaceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if err := s.faces.Register(ctx, emp.ID, req.Photo); err != nil {
		return err
	}

	return s.employees.SetFaceRegistered(ctx, emp.ID, true)
}

// Status reports enrollment from the face service, falling back to the
// stored flag when the service cannot answer.
func (s *Service) Status(ctx context.Context, employeeID string) (*StatusResponse, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	status, err := s.faces.Status(ctx, emp.ID)
	if err != nil {
		return &StatusResponse{EmployeeID: emp.ID, Registered: emp.FaceRegistered}, nil
	}

	resp := &StatusResponse{EmployeeID: emp.ID, Registered: status.Registered}
	if status.EnrolledAt != nil {
		formatted := status.EnrolledAt.Format(time.RFC3339)
		resp.EnrolledAt = &formatted
	}
	return resp, nil
}

// Remove deletes the enrollment and clears the registered flag. The
// employee can no longer clock in until re-enrolled.
func (s *Service) Remove(ctx context.Context, employeeID string) error {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if err := s.faces.Delete(ctx, emp.ID); err != nil {
		return err
	}

	return s.employees.SetFaceRegistered(ctx, emp.ID, false)
}
