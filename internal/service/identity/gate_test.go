package identity

import (
	"context"
	"testing"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/face"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	rec *face.Recognition
	err error
}

func (f *fakeRecognizer) Recognize(ctx context.Context, photo string) (*face.Recognition, error) {
	return f.rec, f.err
}

func TestGateVerify_Match(t *testing.T) {
	gate := NewGate(&fakeRecognizer{rec: &face.Recognition{UserID: "emp-1", Confidence: 0.97}})

	confidence, err := gate.Verify(context.Background(), "emp-1", "photo-data")
	require.NoError(t, err)
	assert.Equal(t, 0.97, confidence)
}

func TestGateVerify_DifferentEmployee(t *testing.T) {
	gate := NewGate(&fakeRecognizer{rec: &face.Recognition{UserID: "emp-2", Confidence: 0.99}})

	_, err := gate.Verify(context.Background(), "emp-1", "photo-data")
	assert.ErrorIs(t, err, attendance.ErrIdentityMismatch)
}

func TestGateVerify_NotRecognized(t *testing.T) {
	gate := NewGate(&fakeRecognizer{err: face.ErrNotRecognized})

	_, err := gate.Verify(context.Background(), "emp-1", "photo-data")
	assert.ErrorIs(t, err, face.ErrNotRecognized)
}

func TestGateVerify_ServiceDown(t *testing.T) {
	gate := NewGate(&fakeRecognizer{err: face.ErrServiceUnavailable})

	_, err := gate.Verify(context.Background(), "emp-1", "photo-data")
	assert.ErrorIs(t, err, face.ErrServiceUnavailable)
}
