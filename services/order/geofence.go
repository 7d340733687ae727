package order

import (
	"errors"
	"math"

	"laundrify/config"
)

// ErrOutsideServiceArea is returned when resolved coordinates fall outside
// the delivery radius. The draft clears its address and coordinates when
// this happens.
var ErrOutsideServiceArea = errors.New("Selected location is outside our service area.")

// GeofenceValidator accepts or rejects coordinates against a circular
// service area around the shop.
type GeofenceValidator struct {
	ShopLatitude  float64
	ShopLongitude float64
	RadiusMeters  float64
}

// NewGeofenceValidator builds a validator from the configured shop location
// and service radius.
func NewGeofenceValidator() *GeofenceValidator {
	return &GeofenceValidator{
		ShopLatitude:  config.AppConfig.ShopLatitude,
		ShopLongitude: config.AppConfig.ShopLongitude,
		RadiusMeters:  config.AppConfig.ServiceRadiusMeters,
	}
}

// Validate returns ErrOutsideServiceArea when the point is farther than the
// service radius from the shop.
func (v *GeofenceValidator) Validate(lat, lon float64) error {
	if v.Distance(lat, lon) > v.RadiusMeters {
		return ErrOutsideServiceArea
	}
	return nil
}

// Distance returns the great-circle distance in meters from the shop to the
// given point.
func (v *GeofenceValidator) Distance(lat, lon float64) float64 {
	return haversine(v.ShopLatitude, v.ShopLongitude, lat, lon)
}

// haversine computes the great-circle distance between two points in meters.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
