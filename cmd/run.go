package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/refuelsim/refuelsim/sim"
)

// runCmd executes one station simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the refueling station simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := scenarioFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting %s simulation: %d pumps, %.0fL tank, horizon=%.0fs, seed=%d",
			cfg.Variant, cfg.Pumps, cfg.TankCapacity, cfg.Horizon, cfg.Seed)
		startTime := time.Now()

		station, err := sim.NewStation(cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		results, err := station.Run()
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		results.Print()

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// init sets up CLI flags and attaches `run` to `root`
func init() {
	addScenarioFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
