package attendance

import (
	"testing"

	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func validClockEventRequest(eventType string) *ClockEventRequest {
	return &ClockEventRequest{
		Type:      eventType,
		Photo:     "aGVsbG8=",
		Latitude:  float64Ptr(-6.2),
		Longitude: float64Ptr(106.8),
	}
}

func TestClockEventRequestValidateAcceptsWireEventTypes(t *testing.T) {
	assert.NoError(t, validClockEventRequest("clock_in").Validate())
	assert.NoError(t, validClockEventRequest("clock_out").Validate())
}

func TestClockEventRequestValidateRejectsUnknownEventTypes(t *testing.T) {
	for _, eventType := range []string{"in", "out", "clockin", ""} {
		err := validClockEventRequest(eventType).Validate()
		require.Error(t, err, "type %q", eventType)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "type", errs[0].Field)
	}
}

func TestClockEventRequestValidateRequiresCoordinates(t *testing.T) {
	req := validClockEventRequest("clock_in")
	req.Latitude = nil
	req.Longitude = nil

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "latitude")
	assert.Contains(t, fields, "longitude")
}
