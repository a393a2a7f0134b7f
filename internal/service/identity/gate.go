package identity

import (
	"context"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/face"
)

// Recognizer is the slice of the face service client the gate needs.
type Recognizer interface {
	Recognize(ctx context.Context, photo string) (*face.Recognition, error)
}

// Gate verifies that a submitted photo belongs to the authenticated
// employee. Recognizing someone else's face is rejected outright, so a
// logged-in account cannot record attendance for a colleague.
type Gate struct {
	recognizer Recognizer
}

func NewGate(recognizer Recognizer) *Gate {
	return &Gate{recognizer: recognizer}
}

// Verify runs the photo through face recognition and checks the match
// against employeeID. On success the match confidence is returned for
// the caller to record.
func (g *Gate) Verify(ctx context.Context, employeeID string, photo string) (float64, error) {
	rec, err := g.recognizer.Recognize(ctx, photo)
	if err != nil {
		return 0, err
	}
	if rec.UserID != employeeID {
		return 0, attendance.ErrIdentityMismatch
	}
	return rec.Confidence, nil
}
