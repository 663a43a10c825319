package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidVehicle = errors.New("invalid vehicle type")

// Tanker truck class used to haul water from a well to a demand point.
// A VehicleType is chosen once per analysis run and never mutated.
type VehicleType struct {
	Name       string  `json:"name" yaml:"name"`
	CapacityM3 float64 `json:"capacity_m3" yaml:"capacity_m3"`
}

func NewVehicleType(name string, capacityM3 float64) (VehicleType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return VehicleType{}, fmt.Errorf("new vehicle type: %w: name must be non-empty", ErrInvalidVehicle)
	}
	if !(capacityM3 > 0) {
		return VehicleType{}, fmt.Errorf("new vehicle type %q: %w: capacity must be > 0 (got %v)", name, ErrInvalidVehicle, capacityM3)
	}
	return VehicleType{Name: name, CapacityM3: capacityM3}, nil
}

// DefaultFleet is the tanker menu offered to operators.
func DefaultFleet() []VehicleType {
	return []VehicleType{
		{Name: "19m3", CapacityM3: 19},
		{Name: "34m3", CapacityM3: 34},
	}
}

// FindVehicle looks up a vehicle by name, ignoring case and surrounding spaces.
func FindVehicle(fleet []VehicleType, name string) (VehicleType, bool) {
	name = strings.TrimSpace(name)
	for _, v := range fleet {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return VehicleType{}, false
}
