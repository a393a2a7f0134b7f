package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{"disjoint", "08:00", "12:00", "13:00", "17:00", false},
		{"contained", "08:00", "17:00", "10:00", "12:00", true},
		{"partial overlap", "08:00", "12:00", "11:00", "15:00", true},
		{"identical", "08:00", "12:00", "08:00", "12:00", true},
		{"shared boundary is not a conflict", "08:00", "12:00", "12:00", "16:00", false},
		{"shared boundary reversed", "12:00", "16:00", "08:00", "12:00", false},
		{"one minute overlap", "08:00", "12:01", "12:00", "16:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}
