package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/services"
)

var ErrInvalidOption = errors.New("invalid analysis option")

// Inclusive bounds for an operator-tunable parameter.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

type CostDefaults struct {
	FuelRateGalPerHour float64 `yaml:"fuel_rate_gal_per_hour"`
	FuelPricePerGal    float64 `yaml:"fuel_price_per_gal"`
	ReferenceSpeedKmh  float64 `yaml:"reference_speed_kmh"`
}

type CostRanges struct {
	FuelRateGalPerHour Range `yaml:"fuel_rate_gal_per_hour"`
	FuelPricePerGal    Range `yaml:"fuel_price_per_gal"`
	ReferenceSpeedKmh  Range `yaml:"reference_speed_kmh"`
}

// Analysis holds the operator menu: tanker sizes, scenarios, cost defaults and
// the critical district combination.
type Analysis struct {
	Vehicles          []domain.VehicleType `yaml:"vehicles"`
	DefaultVehicle    string               `yaml:"default_vehicle"`
	Scenarios         []float64            `yaml:"scenarios"`
	DefaultScenario   float64              `yaml:"default_scenario"`
	Cost              CostDefaults         `yaml:"cost"`
	Ranges            CostRanges           `yaml:"ranges"`
	CriticalDistricts []string             `yaml:"critical_districts"`
}

func DefaultAnalysis() Analysis {
	return Analysis{
		Vehicles:        domain.DefaultFleet(),
		DefaultVehicle:  "19m3",
		Scenarios:       []float64{10, 20, 30},
		DefaultScenario: 10,
		Cost: CostDefaults{
			FuelRateGalPerHour: 5.5,
			FuelPricePerGal:    20,
			ReferenceSpeedKmh:  30,
		},
		Ranges: CostRanges{
			FuelRateGalPerHour: Range{Min: 5, Max: 6},
			FuelPricePerGal:    Range{Min: 0, Max: 20},
			ReferenceSpeedKmh:  Range{Min: 1, Max: 30},
		},
		CriticalDistricts: []string{"ATE", "LURIGANCHO", "SAN_JUAN_DE_LURIGANCHO", "EL_AGUSTINO", "SANTA_ANITA"},
	}
}

// LoadAnalysis reads a YAML file on top of DefaultAnalysis. An empty path
// returns the defaults.
func LoadAnalysis(path string) (Analysis, error) {
	a := DefaultAnalysis()
	if path == "" {
		return a, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("load analysis: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Analysis{}, fmt.Errorf("load analysis: parse %q: %w", path, err)
	}
	if err := a.Validate(); err != nil {
		return Analysis{}, fmt.Errorf("load analysis %q: %w", path, err)
	}
	return a, nil
}

func (a Analysis) Validate() error {
	if len(a.Vehicles) == 0 {
		return errors.New("validate analysis: at least one vehicle is required")
	}
	for _, v := range a.Vehicles {
		if _, err := domain.NewVehicleType(v.Name, v.CapacityM3); err != nil {
			return fmt.Errorf("validate analysis: %w", err)
		}
	}
	if _, ok := domain.FindVehicle(a.Vehicles, a.DefaultVehicle); !ok {
		return fmt.Errorf("validate analysis: default vehicle %q is not in the fleet", a.DefaultVehicle)
	}
	if len(a.Scenarios) == 0 {
		return errors.New("validate analysis: at least one scenario is required")
	}
	for _, s := range a.Scenarios {
		if s <= 0 || s > 100 {
			return fmt.Errorf("validate analysis: scenario %v must be in (0, 100]", s)
		}
	}
	if !slices.Contains(a.Scenarios, a.DefaultScenario) {
		return fmt.Errorf("validate analysis: default scenario %v is not offered", a.DefaultScenario)
	}
	if !a.Ranges.FuelRateGalPerHour.Contains(a.Cost.FuelRateGalPerHour) ||
		!a.Ranges.FuelPricePerGal.Contains(a.Cost.FuelPricePerGal) ||
		!a.Ranges.ReferenceSpeedKmh.Contains(a.Cost.ReferenceSpeedKmh) {
		return errors.New("validate analysis: cost defaults fall outside their ranges")
	}
	return nil
}

// Overrides carries optional per-request values; nil/empty means "use the default".
type Overrides struct {
	Vehicle            string
	ScenarioPercent    *float64
	FuelRateGalPerHour *float64
	FuelPricePerGal    *float64
	ReferenceSpeedKmh  *float64
}

// Options resolves overrides against the menu and ranges.
func (a Analysis) Options(o Overrides) (services.AllocationOptions, error) {
	vehicleName := o.Vehicle
	if vehicleName == "" {
		vehicleName = a.DefaultVehicle
	}
	vehicle, ok := domain.FindVehicle(a.Vehicles, vehicleName)
	if !ok {
		return services.AllocationOptions{}, fmt.Errorf("%w: unknown vehicle %q", ErrInvalidOption, vehicleName)
	}

	scenario := a.DefaultScenario
	if o.ScenarioPercent != nil {
		scenario = *o.ScenarioPercent
	}
	if !slices.Contains(a.Scenarios, scenario) {
		return services.AllocationOptions{}, fmt.Errorf("%w: scenario %v is not one of %v", ErrInvalidOption, scenario, a.Scenarios)
	}

	cost := services.CostParams{
		FuelRateGalPerHour: a.Cost.FuelRateGalPerHour,
		FuelPricePerGal:    a.Cost.FuelPricePerGal,
		ReferenceSpeedKmh:  a.Cost.ReferenceSpeedKmh,
	}
	if err := override(&cost.FuelRateGalPerHour, o.FuelRateGalPerHour, a.Ranges.FuelRateGalPerHour, "fuel_rate_gal_per_hour"); err != nil {
		return services.AllocationOptions{}, err
	}
	if err := override(&cost.FuelPricePerGal, o.FuelPricePerGal, a.Ranges.FuelPricePerGal, "fuel_price_per_gal"); err != nil {
		return services.AllocationOptions{}, err
	}
	if err := override(&cost.ReferenceSpeedKmh, o.ReferenceSpeedKmh, a.Ranges.ReferenceSpeedKmh, "reference_speed_kmh"); err != nil {
		return services.AllocationOptions{}, err
	}

	return services.AllocationOptions{
		ScenarioPercent: scenario,
		Vehicle:         vehicle,
		Cost:            cost,
	}, nil
}

func override(dst *float64, v *float64, r Range, name string) error {
	if v == nil {
		return nil
	}
	if !r.Contains(*v) {
		return fmt.Errorf("%w: %s must be between %v and %v", ErrInvalidOption, name, r.Min, r.Max)
	}
	*dst = *v
	return nil
}
