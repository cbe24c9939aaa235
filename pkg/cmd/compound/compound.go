package compound

import (
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-strategy-sim-go/log"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/config"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/degradation"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/history"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/telemetry"
)

var (
	driver string
	race   string
	year   int
)

// NewCompoundCmd prints the raw degradation/pace estimates for the given
// compounds, useful to sanity check the reference data before a simulation.
func NewCompoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compound COMPOUND...",
		Short: "show degradation and pace estimates per compound",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showEstimates(cmd, args)
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "driver code (e.g. VER)")
	cmd.Flags().StringVar(&race, "race", "", "race name (e.g. Netherlands)")
	cmd.Flags().IntVar(&year, "year", 0, "season to simulate")
	//nolint:errcheck // flags exist
	cmd.MarkFlagRequired("driver")
	//nolint:errcheck // flags exist
	cmd.MarkFlagRequired("race")
	//nolint:errcheck // flags exist
	cmd.MarkFlagRequired("year")
	return cmd
}

//nolint:dupl // setup mirrors simulate on purpose
func newEstimator() *degradation.Estimator {
	timeout, err := time.ParseDuration(config.ArchiveTimeout)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	client := telemetry.NewClient(
		telemetry.WithBaseURL(config.ArchiveURL),
		telemetry.WithTimeout(timeout),
	)
	selector := history.NewSelector(history.WithProvider(client))
	return degradation.NewEstimator(degradation.WithSelector(selector))
}

func showEstimates(cmd *cobra.Command, compounds []string) error {
	estimator := newEstimator()
	header := color.New(color.FgHiCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgHiMagenta)

	header.Printf("Compound estimates for %s, %s (reference before %d)\n",
		driver, race, year)
	for _, arg := range compounds {
		est, err := estimator.CompoundEstimate(
			cmd.Context(), driver, race, year, model.Compound(arg))
		if err != nil {
			return err
		}
		if math.IsNaN(est.DegPerLap) {
			warn.Printf("%-14s no usable stint data\n", arg)
			continue
		}
		good.Printf("%-14s deg %+.4f s/lap   pace %.3f s\n",
			arg, est.DegPerLap, est.AvgLapTime)
	}
	return nil
}
