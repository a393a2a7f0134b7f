package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/auth"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService. A missing account and a wrong
// password produce the same error so the endpoint cannot be used to
// probe registered emails.
func (s *AuthServiceImpl) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, *http.Cookie, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	emp, err := s.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, nil, auth.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if emp.Status != employee.StatusActive {
		return nil, nil, employee.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	resp := &auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Employee:    toSessionEmployee(emp),
	}

	return resp, s.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt), nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.RefreshResponse, error) {
	if refreshToken == "" {
		return nil, auth.ErrInvalidToken
	}
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return nil, auth.ErrTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return nil, auth.ErrInvalidToken
	}
	idVal, ok := token.Get("employee_id")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	employeeID, ok := idVal.(string)
	if !ok || employeeID == "" {
		return nil, auth.ErrInvalidToken
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.Status != employee.StatusActive {
		return nil, employee.ErrEmployeeInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &auth.RefreshResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout implements auth.AuthService. Both tokens are revoked so
// neither can be replayed after logout.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		s.jwtService.RevokeToken(accessToken)
	}
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

// Me implements auth.AuthService.
func (s *AuthServiceImpl) Me(ctx context.Context) (*auth.SessionEmployee, error) {
	employeeID, err := s.employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	session := toSessionEmployee(emp)
	return &session, nil
}

// SSEToken implements auth.AuthService.
func (s *AuthServiceImpl) SSEToken(ctx context.Context) (string, int, error) {
	employeeID, err := s.employeeIDFromContext(ctx)
	if err != nil {
		return "", 0, err
	}
	return s.jwtService.GenerateSSEToken(employeeID)
}

func (s *AuthServiceImpl) employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

func toSessionEmployee(emp employee.Employee) auth.SessionEmployee {
	return auth.SessionEmployee{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		FullName:       emp.FullName,
		Email:          emp.Email,
		Role:           string(emp.Role),
		Department:     emp.Department,
		Position:       emp.Position,
		FaceRegistered: emp.FaceRegistered,
	}
}
