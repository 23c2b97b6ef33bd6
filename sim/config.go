package sim

import "fmt"

// Scenario variants. The basic variant closes the station once the tank
// breaches its threshold; the tank-truck variant keeps it open by calling a
// refill truck whenever the control loop sees the level dip below threshold.
const (
	VariantBasic     = "basic"
	VariantTankTruck = "tanktruck"
)

// Service-time models. ModelRate derives the duration from the granted
// amount and the pump rate; ModelNormal draws it from a clamped-non-negative
// normal distribution.
const (
	ModelRate   = "rate"
	ModelNormal = "normal"
)

// ScenarioConfig holds every parameter of a station run. Zero values are not
// meaningful; start from DefaultScenarioConfig and override.
type ScenarioConfig struct {
	Seed int64 `yaml:"seed"` // master seed for all RNG subsystems

	Pumps            int     `yaml:"pumps"`             // number of capacity-1 pump resources
	TankCapacity     float64 `yaml:"tank_capacity"`     // station tank size (liters)
	ThresholdPercent float64 `yaml:"threshold_percent"` // minimum tank level (% of capacity)

	VehicleTankSize  float64 `yaml:"vehicle_tank_size"` // vehicle fuel tank size (liters)
	VehicleLevelMin  int     `yaml:"vehicle_level_min"` // min arriving fuel level (liters)
	VehicleLevelMax  int     `yaml:"vehicle_level_max"` // max arriving fuel level (liters)
	RefuelRate       float64 `yaml:"refuel_rate"`       // pump rate (liters/second)
	MeanInterarrival float64 `yaml:"mean_interarrival"` // mean vehicle interarrival (seconds)

	Horizon float64 `yaml:"horizon"` // simulation horizon (seconds)
	Variant string  `yaml:"variant"` // "basic" or "tanktruck"

	ControlInterval float64 `yaml:"control_interval"` // tank-truck poll interval (seconds)
	TruckLeadTime   float64 `yaml:"truck_lead_time"`  // truck arrival lead time (seconds)

	ServiceModel        string  `yaml:"service_model"`         // "rate" or "normal"
	ServiceMean         float64 `yaml:"service_mean"`          // normal model mean (seconds)
	ServiceStdDev       float64 `yaml:"service_stddev"`        // normal model stddev (seconds)
	MaxServiceResamples int     `yaml:"max_service_resamples"` // negative-draw retry bound
}

// DefaultScenarioConfig mirrors the classic gas-station parameters: four
// pumps over a 500 L tank with a 25% reserve threshold, vehicles with 50 L
// tanks arriving every 30 s on average, refueled at 2 L/s over a 1000 s
// horizon.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Seed:                42,
		Pumps:               4,
		TankCapacity:        500,
		ThresholdPercent:    25,
		VehicleTankSize:     50,
		VehicleLevelMin:     5,
		VehicleLevelMax:     25,
		RefuelRate:          2,
		MeanInterarrival:    30,
		Horizon:             1000,
		Variant:             VariantBasic,
		ControlInterval:     10,
		TruckLeadTime:       300,
		ServiceModel:        ModelRate,
		ServiceMean:         20,
		ServiceStdDev:       5,
		MaxServiceResamples: 100,
	}
}

// Validate rejects configurations the station cannot run.
func (c ScenarioConfig) Validate() error {
	if c.Pumps <= 0 {
		return fmt.Errorf("pumps must be positive, got %d", c.Pumps)
	}
	if c.TankCapacity <= 0 {
		return fmt.Errorf("tank capacity must be positive, got %v", c.TankCapacity)
	}
	if c.ThresholdPercent < 0 || c.ThresholdPercent >= 100 {
		return fmt.Errorf("threshold percent must be in [0, 100), got %v", c.ThresholdPercent)
	}
	if c.VehicleTankSize <= 0 {
		return fmt.Errorf("vehicle tank size must be positive, got %v", c.VehicleTankSize)
	}
	if c.VehicleLevelMin < 0 || c.VehicleLevelMax < c.VehicleLevelMin {
		return fmt.Errorf("vehicle level range [%d, %d] is invalid", c.VehicleLevelMin, c.VehicleLevelMax)
	}
	if float64(c.VehicleLevelMax) > c.VehicleTankSize {
		return fmt.Errorf("vehicle level max %d exceeds vehicle tank size %v", c.VehicleLevelMax, c.VehicleTankSize)
	}
	if c.RefuelRate <= 0 {
		return fmt.Errorf("refuel rate must be positive, got %v", c.RefuelRate)
	}
	if c.MeanInterarrival <= 0 {
		return fmt.Errorf("mean interarrival must be positive, got %v", c.MeanInterarrival)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %v", c.Horizon)
	}
	switch c.Variant {
	case VariantBasic, VariantTankTruck:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.Variant == VariantTankTruck {
		if c.ControlInterval <= 0 {
			return fmt.Errorf("control interval must be positive, got %v", c.ControlInterval)
		}
		if c.TruckLeadTime < 0 {
			return fmt.Errorf("truck lead time must be non-negative, got %v", c.TruckLeadTime)
		}
	}
	switch c.ServiceModel {
	case ModelRate:
	case ModelNormal:
		if c.ServiceStdDev < 0 {
			return fmt.Errorf("service stddev must be non-negative, got %v", c.ServiceStdDev)
		}
		if c.MaxServiceResamples <= 0 {
			return fmt.Errorf("max service resamples must be positive, got %d", c.MaxServiceResamples)
		}
	default:
		return fmt.Errorf("unknown service model %q", c.ServiceModel)
	}
	return nil
}
