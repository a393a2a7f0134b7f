package face

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	t.Run("match returns user and confidence", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/recognize", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "base64-photo", body["photo"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":    true,
				"user_id":    "emp-123",
				"confidence": 0.94,
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		rec, err := client.Recognize(context.Background(), "base64-photo")
		require.NoError(t, err)
		assert.Equal(t, "emp-123", rec.UserID)
		assert.Equal(t, 0.94, rec.Confidence)
	})

	t.Run("no match is ErrNotRecognized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "no matching face found",
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Recognize(context.Background(), "photo")
		assert.ErrorIs(t, err, ErrNotRecognized)
	})

	t.Run("server error is ErrServiceUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Recognize(context.Background(), "photo")
		assert.ErrorIs(t, err, ErrServiceUnavailable)
		assert.NotErrorIs(t, err, ErrNotRecognized)
	})

	t.Run("timeout is ErrServiceUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 20*time.Millisecond)
		_, err := client.Recognize(context.Background(), "photo")
		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/register-face", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "emp-123", body["user_id"])

			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		assert.NoError(t, client.Register(context.Background(), "emp-123", "photo"))
	})

	t.Run("rejection carries service message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "photo quality too low",
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		err := client.Register(context.Background(), "emp-123", "photo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "photo quality too low")
	})
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status/emp-123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user_id":    "emp-123",
			"registered": true,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	status, err := client.Status(context.Background(), "emp-123")
	require.NoError(t, err)
	assert.True(t, status.Registered)
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewClient(srv.URL, time.Second).Healthy(context.Background()))
	assert.False(t, NewClient("http://127.0.0.1:1", 100*time.Millisecond).Healthy(context.Background()))
}
