package races

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-strategy-sim-go/pkg/track"
)

func NewRacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "races",
		Short: "list known races with lap counts and pit stop time loss",
		Run: func(cmd *cobra.Command, args []string) {
			listRaces()
		},
	}
}

func listRaces() {
	header := color.New(color.FgHiCyan, color.Bold)
	entry := color.New(color.FgWhite)
	header.Printf("%-16s %5s %9s\n", "Race", "Laps", "Pit loss")
	for _, name := range track.Races() {
		laps, _ := track.LapCount(name)
		loss, _ := track.PitStopLoss(name)
		entry.Printf("%-16s %5d %8.1fs\n", name, laps, loss)
	}
}
