package scenario

import (
	"fmt"

	"github.com/pitwall/race-strategy-rl/race"
)

// Profile is one strategic posture a team simulates before a race weekend.
type Profile struct {
	Name string `json:"name"`
	// WindowShift moves the historical pit windows, relative: negative
	// pits earlier for undercuts, positive runs longer stints.
	WindowShift  float64 `json:"window_shift"`
	CompoundBias string  `json:"compound_bias"`
	RiskFactor   float64 `json:"risk_factor"`
	// StartMin and StartMax bound the grid positions the profile trains
	// from.
	StartMin int `json:"start_min"`
	StartMax int `json:"start_max"`
}

// Profiles returns the three standard postures: defending from the front,
// attacking from the midfield, and the neutral baseline.
func Profiles() []Profile {
	return []Profile{
		{Name: "conservative", WindowShift: 0.1, CompoundBias: "HARD", RiskFactor: 0.3, StartMin: 1, StartMax: 5},
		{Name: "aggressive", WindowShift: -0.1, CompoundBias: "SOFT", RiskFactor: 0.8, StartMin: 8, StartMax: 15},
		{Name: "balanced", WindowShift: 0.0, CompoundBias: "MEDIUM", RiskFactor: 0.5, StartMin: 3, StartMax: 10},
	}
}

// Scenario is one driver/posture pairing prepared for a race weekend,
// carrying everything needed to build a tuned simulation.
type Scenario struct {
	Driver      string            `json:"driver"`
	Track       Track             `json:"track"`
	Profile     Profile           `json:"profile"`
	Performance DriverPerformance `json:"driver_performance"`
	Season      SeasonContext     `json:"season_context"`
	// PitWindows are the track's historical windows shifted by the
	// profile.
	PitWindows [2]int `json:"optimal_pit_windows"`
}

// Name identifies the scenario in reports.
func (s Scenario) Name() string {
	return fmt.Sprintf("%s_%s", s.Driver, s.Profile.Name)
}

// Environment builds a race simulation tuned to this scenario: the track's
// length, wear and traffic characteristics, the profile's starting range
// and the season's pit crew speed.
func (s Scenario) Environment(oracle race.Oracle, seed uint64) *race.Environment {
	return race.NewEnvironment(&race.Config{
		TotalLaps:          s.Track.Laps,
		PitStopTime:        s.Season.PitCrewTime(),
		TireWearSeverity:   s.Track.WearSeverity,
		OvertakeDifficulty: s.Track.OvertakeDifficulty,
		StartMin:           s.Profile.StartMin,
		StartMax:           s.Profile.StartMax,
		Oracle:             oracle,
		Seed:               seed,
	})
}

// BuildScenarios prepares the full scenario matrix for a race weekend: every
// driver crossed with every posture, adjusted for the season context.
func BuildScenarios(trackName string, raceNumber int, drivers []string) []Scenario {
	track := LookupTrack(trackName)
	season := NewSeasonContext(raceNumber)
	if len(drivers) == 0 {
		drivers = DefaultDrivers()
	}

	scenarios := make([]Scenario, 0, len(drivers)*3)
	for _, driver := range drivers {
		performance := AdjustDriverPerformance(driver, raceNumber)
		for _, profile := range Profiles() {
			windows := [2]int{
				int(float64(track.PitWindows[0]) * (1 + profile.WindowShift)),
				int(float64(track.PitWindows[1]) * (1 + profile.WindowShift)),
			}
			scenarios = append(scenarios, Scenario{
				Driver:      driver,
				Track:       track,
				Profile:     profile,
				Performance: performance,
				Season:      season,
				PitWindows:  windows,
			})
		}
	}
	return scenarios
}
