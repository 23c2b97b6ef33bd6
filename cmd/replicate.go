package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	sim "github.com/refuelsim/refuelsim/sim"
)

var replications int // Number of independent replications

// replicateCmd runs the scenario repeatedly under derived seeds and reports
// per-replication metrics plus a mean/stddev summary, the usual antidote to
// reading too much into a single stochastic run.
var replicateCmd = &cobra.Command{
	Use:   "replicate",
	Short: "Run independent replications of the scenario and summarize",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := scenarioFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runReplications(os.Stdout, cfg, replications); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runReplications executes n runs with seeds cfg.Seed, cfg.Seed+1, ... and
// writes the report to w. Every replication builds a fresh station, so runs
// share nothing but the configuration.
func runReplications(w io.Writer, cfg sim.ScenarioConfig, n int) error {
	if n <= 0 {
		return fmt.Errorf("replications must be positive, got %d", n)
	}

	queueLengths := make([]float64, 0, n)
	systemLengths := make([]float64, 0, n)
	waits := make([]float64, 0, n)
	sojourns := make([]float64, 0, n)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "seed\tfinal_time\tdepleted\tcompleted\trejected\tpartial\tLq\tL\tWq\tW")

	baseSeed := cfg.Seed
	for i := 0; i < n; i++ {
		cfg.Seed = baseSeed + int64(i)
		station, err := sim.NewStation(cfg)
		if err != nil {
			return err
		}
		r, err := station.Run()
		if err != nil {
			return fmt.Errorf("replication %d (seed %d): %w", i, cfg.Seed, err)
		}

		queueLengths = append(queueLengths, r.MeanQueueLength)
		systemLengths = append(systemLengths, r.MeanSystemLength)
		waits = append(waits, r.MeanWait)
		sojourns = append(sojourns, r.MeanSojourn)

		fmt.Fprintf(tw, "%d\t%.1f\t%v\t%d\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n",
			cfg.Seed, r.FinalTime, r.Depleted, r.Completed, r.Rejected, r.PartialFills,
			r.MeanQueueLength, r.MeanSystemLength, r.MeanWait, r.MeanSojourn)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nAcross %d replications (mean ± stddev):\n", n)
	printSummary(w, "vehicles in queue (Lq)", queueLengths)
	printSummary(w, "vehicles in system (L)", systemLengths)
	printSummary(w, "wait in queue (Wq)", waits)
	printSummary(w, "time in system (W)", sojourns)
	return nil
}

func printSummary(w io.Writer, label string, samples []float64) {
	mean := stat.Mean(samples, nil)
	sd := 0.0
	if len(samples) > 1 {
		sd = stat.StdDev(samples, nil)
	}
	fmt.Fprintf(w, "  %-24s %.3f ± %.3f\n", label, mean, sd)
}

// init sets up CLI flags and attaches `replicate` to `root`
func init() {
	addScenarioFlags(replicateCmd)
	replicateCmd.Flags().IntVar(&replications, "replications", 10, "Number of independent replications")
	rootCmd.AddCommand(replicateCmd)
}
