package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type ZoneKind string

const (
	ZoneSector      ZoneKind = "sector"
	ZoneDistrict    ZoneKind = "district"
	ZoneCombination ZoneKind = "combination"
)

var ErrEmptySelection = errors.New("zone selection is empty")

// ParseZoneKind accepts the persisted kinds (sector, district).
func ParseZoneKind(s string) (ZoneKind, error) {
	switch ZoneKind(strings.ToLower(strings.TrimSpace(s))) {
	case ZoneSector:
		return ZoneSector, nil
	case ZoneDistrict:
		return ZoneDistrict, nil
	}
	return "", fmt.Errorf("unknown zone kind %q", s)
}

// A demand zone (sector or district) reduced to its centroid and daily deficit.
// Geometry repair and centroid extraction happen upstream of this service.
type Zone struct {
	Name           string      `json:"name"`
	Kind           ZoneKind    `json:"kind"`
	Centroid       Coordinates `json:"centroid"`
	AreaKm2        float64     `json:"area_km2"`
	DemandM3PerDay float64     `json:"demand_m3_per_day"`
}

func (z Zone) DemandPoint() DemandPoint {
	return DemandPoint{
		Label:          z.Name,
		Location:       z.Centroid,
		DemandM3PerDay: z.DemandM3PerDay,
	}
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName trims, upper-cases and strips diacritics so that names coming
// from different sources (shapefiles, demand tables, operators) compare equal.
func NormalizeName(s string) string {
	out, _, err := transform.String(accentStripper, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToUpper(out)
}

// CombineZones merges several zones into one demand point.
// Demand is summed. The location is the area-weighted centroid, which equals
// the centroid of the union for disjoint polygons; when any area is unknown the
// plain mean of the centroids is used.
func CombineZones(name string, zones []Zone) (Zone, error) {
	if len(zones) == 0 {
		return Zone{}, fmt.Errorf("combine zones %q: %w", name, ErrEmptySelection)
	}

	var demand, area, wLon, wLat, mLon, mLat float64
	weighted := true
	for _, z := range zones {
		demand += z.DemandM3PerDay
		mLon += z.Centroid.Lon
		mLat += z.Centroid.Lat
		if z.AreaKm2 <= 0 {
			weighted = false
			continue
		}
		area += z.AreaKm2
		wLon += z.Centroid.Lon * z.AreaKm2
		wLat += z.Centroid.Lat * z.AreaKm2
	}

	n := float64(len(zones))
	centroid := Coordinates{Lon: mLon / n, Lat: mLat / n}
	if weighted && area > 0 {
		centroid = Coordinates{Lon: wLon / area, Lat: wLat / area}
	}

	return Zone{
		Name:           name,
		Kind:           ZoneCombination,
		Centroid:       centroid,
		AreaKm2:        area,
		DemandM3PerDay: demand,
	}, nil
}

var ErrZoneNotFound = errors.New("zone not found")
