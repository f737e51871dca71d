package scenario

import (
	"math"
	"sort"

	"github.com/pitwall/race-strategy-rl/rl"
	"github.com/pitwall/race-strategy-rl/util"
	"gonum.org/v1/gonum/stat"
)

// Insights condenses the best race per scenario into pit notes for the
// weekend: when to stop, how often, and on what rubber.
type Insights struct {
	// PitWindow brackets the middle half of all pit laps seen across the
	// winning strategies.
	PitWindow     [2]int             `json:"optimal_pit_window"`
	AvgPitStops   float64            `json:"average_pit_stops"`
	FastestTime   float64            `json:"fastest_strategy_time"`
	CompoundUsage map[string]float64 `json:"most_common_compounds"`
}

func BuildInsights(best []rl.RaceSummary) Insights {
	pitLaps := make([]float64, 0)
	stops := make([]float64, 0, len(best))
	compounds := util.NewCounter()
	fastest := math.Inf(1)

	for _, summary := range best {
		stops = append(stops, float64(summary.PitStops))
		if summary.TotalTime < fastest {
			fastest = summary.TotalTime
		}
		for _, pit := range summary.PitHistory {
			pitLaps = append(pitLaps, float64(pit.Lap))
			compounds.Add(pit.Compound)
		}
	}

	window := [2]int{30, 40}
	if len(pitLaps) > 0 {
		sort.Float64s(pitLaps)
		window[0] = int(stat.Quantile(0.25, stat.Empirical, pitLaps, nil))
		window[1] = int(stat.Quantile(0.75, stat.Empirical, pitLaps, nil))
	}

	usage := compounds.Fractions()
	if len(usage) == 0 {
		usage = map[string]float64{"MEDIUM": 1}
	}

	insights := Insights{
		PitWindow:     window,
		CompoundUsage: usage,
	}
	if len(stops) > 0 {
		insights.AvgPitStops = stat.Mean(stops, nil)
	}
	if !math.IsInf(fastest, 1) {
		insights.FastestTime = fastest
	}
	return insights
}
