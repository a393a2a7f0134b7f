package face

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotRecognized means the service answered but matched no enrolled face.
	ErrNotRecognized = errors.New("face not recognized")
	// ErrServiceUnavailable means the service could not be reached or answer
	// in time. Callers must not treat this as a failed match.
	ErrServiceUnavailable = errors.New("face recognition service unavailable")
)

// Recognition is a successful match returned by the service.
type Recognition struct {
	UserID     string
	Confidence float64
}

// EnrollmentStatus reports whether a user has an enrolled face.
type EnrollmentStatus struct {
	UserID     string
	Registered bool
	EnrolledAt *time.Time
}

// Client talks to the external face recognition service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type recognizeResponse struct {
	Success    bool    `json:"success"`
	UserID     string  `json:"user_id"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// Recognize submits a base64 photo and returns the matched user.
func (c *Client) Recognize(ctx context.Context, photo string) (*Recognition, error) {
	var res recognizeResponse
	if err := c.post(ctx, "/recognize", map[string]string{"photo": photo}, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.UserID == "" {
		return nil, ErrNotRecognized
	}
	return &Recognition{UserID: res.UserID, Confidence: res.Confidence}, nil
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register enrolls a face photo for the given user.
func (c *Client) Register(ctx context.Context, userID string, photo string) error {
	var res registerResponse
	payload := map[string]string{"user_id": userID, "photo": photo}
	if err := c.post(ctx, "/register-face", payload, &res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("face registration rejected: %s", res.Message)
	}
	return nil
}

type statusResponse struct {
	UserID     string     `json:"user_id"`
	Registered bool       `json:"registered"`
	EnrolledAt *time.Time `json:"enrolled_at"`
}

// Status reports the enrollment state for a user.
func (c *Client) Status(ctx context.Context, userID string) (*EnrollmentStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status/"+userID, nil)
	if err != nil {
		return nil, err
	}
	var res statusResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &EnrollmentStatus{UserID: res.UserID, Registered: res.Registered, EnrolledAt: res.EnrolledAt}, nil
}

// Delete removes a user's enrollment.
func (c *Client) Delete(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/face/"+userID, nil)
	if err != nil {
		return err
	}
	return c.do(req, &registerResponse{})
}

// Healthy pings the service health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures are availability problems,
		// never a negative match.
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotRecognized
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrServiceUnavailable, err)
	}
	return nil
}
