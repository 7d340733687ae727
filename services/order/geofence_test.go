package order

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// latDegreesForMeters converts a due-north distance to a latitude offset,
// inverting the haversine for a pure latitude displacement.
func latDegreesForMeters(meters float64) float64 {
	return meters * 180 / (math.Pi * 6371000.0)
}

func TestGeofence_DistanceAtShopIsZero(t *testing.T) {
	v := shopGeofence()
	assert.InDelta(t, 0, v.Distance(v.ShopLatitude, v.ShopLongitude), 0.001)
}

func TestGeofence_BoundaryMeters(t *testing.T) {
	v := shopGeofence()

	cases := []struct {
		name   string
		meters float64
		inside bool
	}{
		{"one meter under the radius", 29999, true},
		{"one meter past the radius", 30001, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat := v.ShopLatitude + latDegreesForMeters(tc.meters)
			require.InDelta(t, tc.meters, v.Distance(lat, v.ShopLongitude), 0.01)

			err := v.Validate(lat, v.ShopLongitude)
			if tc.inside {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrOutsideServiceArea)
			}
		})
	}
}

func TestGeofence_KnownCityDistances(t *testing.T) {
	v := shopGeofence()

	// Indiranagar is a few kilometres from the shop.
	assert.NoError(t, v.Validate(12.9784, 77.6408))

	// Mysuru is roughly 130 km away.
	err := v.Validate(12.2958, 76.6394)
	require.ErrorIs(t, err, ErrOutsideServiceArea)
	assert.Greater(t, v.Distance(12.2958, 76.6394), 100000.0)
}
