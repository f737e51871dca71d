package scenario

import "sort"

// Track is the historical strategy baseline for one circuit: the pit
// windows that worked in past seasons, compound preferences, and how the
// track treats tires and overtaking.
type Track struct {
	Name               string             `json:"name"`
	Laps               int                `json:"laps"`
	PitWindows         [2]int             `json:"optimal_pit_windows"`
	CompoundPreference map[string]float64 `json:"compound_preference"`
	TrackEvolution     float64            `json:"track_evolution"`
	WearSeverity       float64            `json:"tire_degradation_severity"`
	OvertakeDifficulty float64            `json:"overtaking_difficulty"`
	TypicalRaceTime    float64            `json:"typical_race_time"`
	WeatherRisk        float64            `json:"weather_risk"`
}

// catalog holds the per-circuit baselines for a full 24-round season.
var catalog = map[string]Track{
	"Melbourne": {
		Laps:               70,
		PitWindows:         [2]int{30, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.4,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.5,
		TypicalRaceTime:    5400,
		WeatherRisk:        0.2,
	},
	"Shanghai": {
		Laps:               70,
		PitWindows:         [2]int{32, 40},
		CompoundPreference: map[string]float64{"MEDIUM": 0.5, "HARD": 0.5},
		TrackEvolution:     0.3,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    5500,
		WeatherRisk:        0.3,
	},
	"Sakhir": {
		Laps:               70,
		PitWindows:         [2]int{28, 36},
		CompoundPreference: map[string]float64{"MEDIUM": 0.3, "HARD": 0.7},
		TrackEvolution:     0.2,
		WearSeverity:       0.9,
		OvertakeDifficulty: 0.3,
		TypicalRaceTime:    5200,
		WeatherRisk:        0.1,
	},
	"Suzuka": {
		Laps:               70,
		PitWindows:         [2]int{28, 36},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.4,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.5,
		TypicalRaceTime:    5300,
		WeatherRisk:        0.4,
	},
	"Jeddah": {
		Laps:               70,
		PitWindows:         [2]int{30, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.3,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.6,
		TypicalRaceTime:    4900,
		WeatherRisk:        0.1,
	},
	"Miami": {
		Laps:               70,
		PitWindows:         [2]int{32, 40},
		CompoundPreference: map[string]float64{"MEDIUM": 0.5, "HARD": 0.5},
		TrackEvolution:     0.4,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.5,
		TypicalRaceTime:    5300,
		WeatherRisk:        0.4,
	},
	"Imola": {
		Laps:               70,
		PitWindows:         [2]int{35, 42},
		CompoundPreference: map[string]float64{"MEDIUM": 0.6, "HARD": 0.4},
		TrackEvolution:     0.3,
		WearSeverity:       0.6,
		OvertakeDifficulty: 0.8,
		TypicalRaceTime:    5400,
		WeatherRisk:        0.3,
	},
	"Monaco": {
		// Low degradation pushes the stops very late; passing is nearly
		// impossible, so track position is everything.
		Laps:               78,
		PitWindows:         [2]int{45, 55},
		CompoundPreference: map[string]float64{"HARD": 0.8, "MEDIUM": 0.2},
		TrackEvolution:     0.1,
		WearSeverity:       0.3,
		OvertakeDifficulty: 0.95,
		TypicalRaceTime:    5100,
		WeatherRisk:        0.1,
	},
	"Barcelona": {
		Laps:               70,
		PitWindows:         [2]int{25, 35},
		CompoundPreference: map[string]float64{"MEDIUM": 0.3, "HARD": 0.7},
		TrackEvolution:     0.4,
		WearSeverity:       0.9,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    5300,
		WeatherRisk:        0.2,
	},
	"Montreal": {
		Laps:               70,
		PitWindows:         [2]int{30, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.4,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    5200,
		WeatherRisk:        0.5,
	},
	"Austria": {
		Laps:               71,
		PitWindows:         [2]int{30, 40},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.4,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    4200,
		WeatherRisk:        0.5,
	},
	"Silverstone": {
		Laps:               70,
		PitWindows:         [2]int{32, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.3,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.6,
		TypicalRaceTime:    5400,
		WeatherRisk:        0.4,
	},
	"Hungaroring": {
		Laps:               70,
		PitWindows:         [2]int{35, 45},
		CompoundPreference: map[string]float64{"MEDIUM": 0.6, "HARD": 0.4},
		TrackEvolution:     0.5,
		WearSeverity:       0.6,
		OvertakeDifficulty: 0.8,
		TypicalRaceTime:    5500,
		WeatherRisk:        0.4,
	},
	"Spa": {
		// Long straights reward early stops and durable compounds. The
		// weather risk is the highest on the calendar.
		Laps:               70,
		PitWindows:         [2]int{28, 35},
		CompoundPreference: map[string]float64{"MEDIUM": 0.3, "HARD": 0.7},
		TrackEvolution:     0.5,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.3,
		TypicalRaceTime:    4800,
		WeatherRisk:        0.8,
	},
	"Zandvoort": {
		Laps:               70,
		PitWindows:         [2]int{32, 40},
		CompoundPreference: map[string]float64{"MEDIUM": 0.5, "HARD": 0.5},
		TrackEvolution:     0.3,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.7,
		TypicalRaceTime:    5100,
		WeatherRisk:        0.6,
	},
	"Monza": {
		Laps:               70,
		PitWindows:         [2]int{28, 35},
		CompoundPreference: map[string]float64{"MEDIUM": 0.5, "HARD": 0.5},
		TrackEvolution:     0.3,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.3,
		TypicalRaceTime:    4800,
		WeatherRisk:        0.3,
	},
	"Baku": {
		Laps:               70,
		PitWindows:         [2]int{30, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.2,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    5400,
		WeatherRisk:        0.2,
	},
	"Singapore": {
		Laps:               70,
		PitWindows:         [2]int{35, 45},
		CompoundPreference: map[string]float64{"MEDIUM": 0.6, "SOFT": 0.4},
		TrackEvolution:     0.4,
		WearSeverity:       0.6,
		OvertakeDifficulty: 0.7,
		TypicalRaceTime:    6200,
		WeatherRisk:        0.5,
	},
	"Austin": {
		Laps:               70,
		PitWindows:         [2]int{30, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.4,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    5300,
		WeatherRisk:        0.3,
	},
	"Mexico": {
		Laps:               70,
		PitWindows:         [2]int{28, 36},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.3,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    5400,
		WeatherRisk:        0.3,
	},
	"Brazil": {
		Laps:               70,
		PitWindows:         [2]int{30, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.5, "HARD": 0.5},
		TrackEvolution:     0.4,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.4,
		TypicalRaceTime:    5100,
		WeatherRisk:        0.7,
	},
	"Las Vegas": {
		Laps:               70,
		PitWindows:         [2]int{32, 40},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.3,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.5,
		TypicalRaceTime:    5200,
		WeatherRisk:        0.1,
	},
	"Qatar": {
		Laps:               70,
		PitWindows:         [2]int{30, 38},
		CompoundPreference: map[string]float64{"MEDIUM": 0.4, "HARD": 0.6},
		TrackEvolution:     0.3,
		WearSeverity:       0.8,
		OvertakeDifficulty: 0.5,
		TypicalRaceTime:    5300,
		WeatherRisk:        0.1,
	},
	"Abu Dhabi": {
		Laps:               70,
		PitWindows:         [2]int{32, 40},
		CompoundPreference: map[string]float64{"MEDIUM": 0.5, "HARD": 0.5},
		TrackEvolution:     0.3,
		WearSeverity:       0.7,
		OvertakeDifficulty: 0.5,
		TypicalRaceTime:    5400,
		WeatherRisk:        0.1,
	},
}

// aliases maps grand prix style names onto catalog circuits.
var aliases = map[string]string{
	"Australia":     "Melbourne",
	"China":         "Shanghai",
	"Bahrain":       "Sakhir",
	"Japan":         "Suzuka",
	"Saudi Arabia":  "Jeddah",
	"Spain":         "Barcelona",
	"Canada":        "Montreal",
	"Britain":       "Silverstone",
	"Hungary":       "Hungaroring",
	"Belgium":       "Spa",
	"Netherlands":   "Zandvoort",
	"Italy":         "Monza",
	"Azerbaijan":    "Baku",
	"United States": "Austin",
	"São Paulo":     "Brazil",
}

// LookupTrack resolves a track or grand prix name to its baseline. Unknown
// names fall back to the Silverstone baseline.
func LookupTrack(name string) Track {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	track, ok := catalog[name]
	if !ok {
		name = "Silverstone"
		track = catalog[name]
	}
	track.Name = name
	return track
}

// TrackNames lists the catalog circuits in sorted order.
func TrackNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
