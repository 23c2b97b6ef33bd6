package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/refuelsim/refuelsim/sim"
)

var (
	// CLI flags for the station scenario
	scenarioPath     string  // Optional YAML scenario file
	seed             int64   // Master seed for all RNG subsystems
	pumps            int     // Number of pumps
	tankCapacity     float64 // Station tank size (liters)
	thresholdPercent float64 // Minimum tank level (% of capacity)
	vehicleTankSize  float64 // Vehicle fuel tank size (liters)
	vehicleLevelMin  int     // Min arriving fuel level (liters)
	vehicleLevelMax  int     // Max arriving fuel level (liters)
	refuelRate       float64 // Pump rate (liters/second)
	meanInterarrival float64 // Mean vehicle interarrival (seconds)
	horizon          float64 // Simulation horizon (seconds)
	variant          string  // Scenario variant
	controlInterval  float64 // Tank-truck poll interval (seconds)
	truckLeadTime    float64 // Truck arrival lead time (seconds)
	serviceModel     string  // Service-time model
	serviceMean      float64 // Normal model mean (seconds)
	serviceStdDev    float64 // Normal model stddev (seconds)
)

// addScenarioFlags registers the scenario parameters on a command, with the
// classic gas-station defaults.
func addScenarioFlags(cmd *cobra.Command) {
	d := sim.DefaultScenarioConfig()
	cmd.Flags().StringVar(&scenarioPath, "config", "", "YAML scenario file (flags override its values)")
	cmd.Flags().Int64Var(&seed, "seed", d.Seed, "Master seed for all RNG subsystems")
	cmd.Flags().IntVar(&pumps, "pumps", d.Pumps, "Number of pumps")
	cmd.Flags().Float64Var(&tankCapacity, "tank-capacity", d.TankCapacity, "Station tank size (liters)")
	cmd.Flags().Float64Var(&thresholdPercent, "threshold-percent", d.ThresholdPercent, "Minimum tank level (% of capacity)")
	cmd.Flags().Float64Var(&vehicleTankSize, "vehicle-tank-size", d.VehicleTankSize, "Vehicle fuel tank size (liters)")
	cmd.Flags().IntVar(&vehicleLevelMin, "vehicle-level-min", d.VehicleLevelMin, "Min arriving fuel level (liters)")
	cmd.Flags().IntVar(&vehicleLevelMax, "vehicle-level-max", d.VehicleLevelMax, "Max arriving fuel level (liters)")
	cmd.Flags().Float64Var(&refuelRate, "refuel-rate", d.RefuelRate, "Pump rate (liters/second)")
	cmd.Flags().Float64Var(&meanInterarrival, "mean-interarrival", d.MeanInterarrival, "Mean vehicle interarrival (seconds)")
	cmd.Flags().Float64Var(&horizon, "horizon", d.Horizon, "Simulation horizon (seconds)")
	cmd.Flags().StringVar(&variant, "variant", d.Variant, "Scenario variant (basic, tanktruck)")
	cmd.Flags().Float64Var(&controlInterval, "control-interval", d.ControlInterval, "Tank-truck poll interval (seconds)")
	cmd.Flags().Float64Var(&truckLeadTime, "truck-lead-time", d.TruckLeadTime, "Truck arrival lead time (seconds)")
	cmd.Flags().StringVar(&serviceModel, "service-model", d.ServiceModel, "Service-time model (rate, normal)")
	cmd.Flags().Float64Var(&serviceMean, "service-mean", d.ServiceMean, "Normal service-time mean (seconds)")
	cmd.Flags().Float64Var(&serviceStdDev, "service-stddev", d.ServiceStdDev, "Normal service-time stddev (seconds)")
}

// LoadScenarioConfig reads a YAML scenario file over the defaults, so a file
// only needs to name the parameters it changes.
func LoadScenarioConfig(path string) (sim.ScenarioConfig, error) {
	cfg := sim.DefaultScenarioConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading scenario file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	return cfg, nil
}

// scenarioFromFlags assembles the effective configuration: defaults, then the
// optional scenario file, then any flags the user explicitly set. Flags the
// user did not touch never overwrite file values, hence the Changed checks.
func scenarioFromFlags(cmd *cobra.Command) (sim.ScenarioConfig, error) {
	cfg := sim.DefaultScenarioConfig()
	if scenarioPath != "" {
		var err error
		if cfg, err = LoadScenarioConfig(scenarioPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("pumps") {
		cfg.Pumps = pumps
	}
	if flags.Changed("tank-capacity") {
		cfg.TankCapacity = tankCapacity
	}
	if flags.Changed("threshold-percent") {
		cfg.ThresholdPercent = thresholdPercent
	}
	if flags.Changed("vehicle-tank-size") {
		cfg.VehicleTankSize = vehicleTankSize
	}
	if flags.Changed("vehicle-level-min") {
		cfg.VehicleLevelMin = vehicleLevelMin
	}
	if flags.Changed("vehicle-level-max") {
		cfg.VehicleLevelMax = vehicleLevelMax
	}
	if flags.Changed("refuel-rate") {
		cfg.RefuelRate = refuelRate
	}
	if flags.Changed("mean-interarrival") {
		cfg.MeanInterarrival = meanInterarrival
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("variant") {
		cfg.Variant = variant
	}
	if flags.Changed("control-interval") {
		cfg.ControlInterval = controlInterval
	}
	if flags.Changed("truck-lead-time") {
		cfg.TruckLeadTime = truckLeadTime
	}
	if flags.Changed("service-model") {
		cfg.ServiceModel = serviceModel
	}
	if flags.Changed("service-mean") {
		cfg.ServiceMean = serviceMean
	}
	if flags.Changed("service-stddev") {
		cfg.ServiceStdDev = serviceStdDev
	}
	return cfg, nil
}
