package simulate

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/f1-strategy-sim-go/log"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/config"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/degradation"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/history"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/simulation"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/telemetry"
)

var (
	driver        string
	race          string
	year          int
	strategyFile  string
	showBreakdown bool
)

func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "project total race times for the strategies in a strategy file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulateRace(cmd)
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "driver code (e.g. VER)")
	cmd.Flags().StringVar(&race, "race", "", "race name (e.g. Netherlands)")
	cmd.Flags().IntVar(&year, "year", 0, "season to simulate")
	cmd.Flags().StringVar(&strategyFile, "strategies", "",
		"YAML file with the strategies to compare")
	cmd.Flags().BoolVar(&showBreakdown, "breakdown", false,
		"show the stint/pit breakdown per strategy")
	//nolint:errcheck // flags exist
	cmd.MarkFlagRequired("driver")
	//nolint:errcheck // flags exist
	cmd.MarkFlagRequired("race")
	//nolint:errcheck // flags exist
	cmd.MarkFlagRequired("year")
	//nolint:errcheck // flags exist
	cmd.MarkFlagRequired("strategies")
	return cmd
}

type strategiesFile struct {
	Strategies []model.Strategy `yaml:"strategies"`
}

func loadStrategies(path string) ([]model.Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read strategy file %s: %w", path, err)
	}
	var sf strategiesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("could not parse strategy file %s: %w", path, err)
	}
	if len(sf.Strategies) == 0 {
		return nil, fmt.Errorf("strategy file %s contains no strategies", path)
	}
	return sf.Strategies, nil
}

func newSimulator() *simulation.Simulator {
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
	estimator := degradation.NewEstimator(degradation.WithSelector(selector))
	return simulation.NewSimulator(simulation.WithEstimator(estimator))
}

func simulateRace(cmd *cobra.Command) error {
	strategies, err := loadStrategies(strategyFile)
	if err != nil {
		return err
	}
	sim := newSimulator()
	results, err := sim.CompareStrategiesDetailed(
		cmd.Context(), driver, race, year, strategies)
	if err != nil {
		return err
	}

	// fastest first, strategies without usable data last
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].TotalSeconds, results[j].TotalSeconds
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a < b
	})

	header := color.New(color.FgHiCyan, color.Bold)
	best := color.New(color.FgHiGreen)
	plain := color.New(color.FgWhite)
	warn := color.New(color.FgHiMagenta)

	header.Printf("Projected race times for %s, %s %d\n", driver, race, year)
	for i, res := range results {
		line := plain
		if i == 0 && !math.IsNaN(res.TotalSeconds) {
			line = best
		}
		if math.IsNaN(res.TotalSeconds) {
			warn.Printf("%-20s insufficient data (check logs)\n", res.Name)
		} else {
			line.Printf("%-20s %10.3fs  (%s)\n",
				res.Name, res.TotalSeconds, formatRaceTime(res.TotalSeconds))
		}
		if showBreakdown {
			for _, part := range res.Parts {
				fmt.Printf("    %s\n", part.Output())
			}
		}
	}
	return nil
}

func formatRaceTime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return d.Truncate(time.Millisecond).String()
}
