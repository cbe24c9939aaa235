// Package track holds the static per-circuit reference data used by the
// strategy projection: scheduled race distance and the average time lost for
// a pit stop (entry, service and exit).
package track

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrRaceNotFound = errors.New("race not found")

var raceLaps = map[string]int{
	"BAHRAIN":        57,
	"SAUDI_ARABIA":   50,
	"AUSTRALIA":      58,
	"JAPAN":          53,
	"CHINA":          56,
	"MIAMI":          57,
	"EMILIA_ROMAGNA": 63,
	"MONACO":         78,
	"CANADA":         70,
	"SPAIN":          66,
	"AUSTRIA":        71,
	"GREAT_BRITAIN":  52,
	"HUNGARY":        70,
	"BELGIUM":        44,
	"NETHERLANDS":    72,
	"ITALY":          53,
	"AZERBAIJAN":     51,
	"SINGAPORE":      61,
	"UNITED_STATES":  56,
	"MEXICO":         71,
	"BRAZIL":         71,
	"LAS_VEGAS":      50,
	"QATAR":          57,
	"ABU_DHABI":      58,
}

// average pit stop time loss in seconds, including entry and exit
var pitStopLoss = map[string]float64{
	"BAHRAIN":        25.0,
	"SAUDI_ARABIA":   21.0,
	"AUSTRALIA":      18.0,
	"JAPAN":          23.0,
	"CHINA":          23.0,
	"MIAMI":          23.0,
	"EMILIA_ROMAGNA": 30.0,
	"MONACO":         24.0,
	"CANADA":         24.0,
	"SPAIN":          22.0,
	"AUSTRIA":        22.0,
	"GREAT_BRITAIN":  29.0,
	"HUNGARY":        22.0,
	"BELGIUM":        23.0,
	"NETHERLANDS":    21.0,
	"ITALY":          24.0,
	"AZERBAIJAN":     20.0,
	"SINGAPORE":      29.0,
	"UNITED_STATES":  24.0,
	"MEXICO":         23.0,
	"BRAZIL":         25.0,
	"LAS_VEGAS":      21.0,
	"QATAR":          23.0,
	"ABU_DHABI":      22.0,
}

// Normalize converts a human readable race name to the lookup key,
// e.g. "Great Britain" -> "GREAT_BRITAIN".
func Normalize(race string) string {
	return strings.ToUpper(strings.ReplaceAll(race, " ", "_"))
}

func LapCount(race string) (int, error) {
	if laps, ok := raceLaps[Normalize(race)]; ok {
		return laps, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrRaceNotFound, race)
}

func PitStopLoss(race string) (float64, error) {
	if loss, ok := pitStopLoss[Normalize(race)]; ok {
		return loss, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrRaceNotFound, race)
}

// Races returns all known race keys in alphabetical order.
func Races() []string {
	ret := make([]string, 0, len(raceLaps))
	for k := range raceLaps {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
