package domain

import "math"

// KmPerDegree is the flat degree-to-kilometer factor used by planar distances.
// It is only reasonable for small regional extents.
const KmPerDegree = 111.0

const earthRadiusKm = 6371.0

// Immutable geographic coordinates (longitude, latitude) in degrees.
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Return coordinates as [lon, lat] for GeoJSON-style payloads.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Valid reports whether both components are finite and inside WGS84 bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) || math.IsInf(c.Lon, 0) || math.IsInf(c.Lat, 0) {
		return false
	}
	return c.Lon >= -180 && c.Lon <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// PlanarDistanceKm is the straight-line distance in degree space scaled by KmPerDegree.
func (c Coordinates) PlanarDistanceKm(o Coordinates) float64 {
	return math.Hypot(c.Lon-o.Lon, c.Lat-o.Lat) * KmPerDegree
}

// HaversineDistanceKm is the great-circle distance between two points.
func (c Coordinates) HaversineDistanceKm(o Coordinates) float64 {
	dLat := (o.Lat - c.Lat) * math.Pi / 180
	dLon := (o.Lon - c.Lon) * math.Pi / 180
	lat1 := c.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
