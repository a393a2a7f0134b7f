package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var office = Point{Latitude: -6.2088, Longitude: 106.8456}

func TestDistance(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(office, office))
	})

	t.Run("symmetric", func(t *testing.T) {
		p := Point{Latitude: -6.21, Longitude: 106.85}
		assert.InDelta(t, Distance(office, p), Distance(p, office), 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a := Point{Latitude: 0, Longitude: 0}
		b := Point{Latitude: 1, Longitude: 0}
		assert.InDelta(t, 111194.9, Distance(a, b), 1.0)
	})
}

func TestFenceValidate(t *testing.T) {
	fence := Fence{Center: office, Radius: 100}

	t.Run("inside radius passes", func(t *testing.T) {
		near := Point{Latitude: -6.2089, Longitude: 106.8456}
		assert.NoError(t, fence.Validate(near))
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		p := Point{Latitude: -6.2097, Longitude: 106.8456}
		exact := Fence{Center: office, Radius: Distance(p, office)}
		assert.NoError(t, exact.Validate(p))
	})

	t.Run("150m away is rejected with distance", func(t *testing.T) {
		// ~150m north of the fence center
		far := Point{Latitude: -6.2088 + 0.00134915, Longitude: 106.8456}

		err := fence.Validate(far)
		require.Error(t, err)

		var oor *OutOfRangeError
		require.True(t, errors.As(err, &oor))
		assert.InDelta(t, 150, oor.DistanceMeters, 1)
		assert.Equal(t, 100.0, oor.AllowedRadius)
		assert.Contains(t, err.Error(), "150m")
	})
}
