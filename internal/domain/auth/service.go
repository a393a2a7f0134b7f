package auth

import (
	"context"
	"net/http"
)

// AuthService defines authentication business logic.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, *http.Cookie, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	Me(ctx context.Context) (*SessionEmployee, error)
	SSEToken(ctx context.Context) (token string, expiresIn int, err error)
}
