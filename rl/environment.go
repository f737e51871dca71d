package rl

// Environment is the episodic race simulation the agent interacts with.
// Reset starts a fresh race for a driver/track pair and returns the first
// observation. Step executes one action, advances the race by one lap and
// returns the next observation, the reward collected during the step and
// whether the race finished. Summary reports on the race run so far; it is
// complete only once Step has returned done.
type Environment interface {
	Reset(driver, track string) State
	Step(action Action) (State, float64, bool)
	Summary() RaceSummary
	Telemetry() Telemetry
}

// Telemetry is the live car state an environment exposes alongside the
// normalized observation, read when recording strategy decisions.
type Telemetry struct {
	Lap      int `json:"lap"`
	Position int `json:"position"`
	TireAge  int `json:"tire_age"`
}

// PitRecord is one executed pit stop as the environment recorded it, with
// the position after the pit-lane loss was applied.
type PitRecord struct {
	Lap      int    `json:"lap"`
	Compound string `json:"compound"`
	Position int    `json:"position"`
}

// LapRecord describes one completed lap of the tire usage profile.
type LapRecord struct {
	Lap      int     `json:"lap"`
	TireAge  int     `json:"tire_age"`
	Compound string  `json:"compound"`
	LapTime  float64 `json:"lap_time"`
}

// RaceSummary is the terminal report of one simulated race.
type RaceSummary struct {
	TotalTime     float64     `json:"total_time"`
	PitStops      int         `json:"pit_stops"`
	PitHistory    []PitRecord `json:"pit_history"`
	FinalPosition int         `json:"final_position"`
	AvgLapTime    float64     `json:"average_lap_time"`
	LapsCompleted int         `json:"laps_completed"`
	Profile       []LapRecord `json:"tire_profile"`
}

// PitStop is one entry of a predicted pit schedule, captured at the moment
// the agent called the stop: the lap, position and tire age are the values
// seen when the decision was made.
type PitStop struct {
	Lap      int    `json:"lap"`
	Compound string `json:"compound"`
	Position int    `json:"position"`
	TireAge  int    `json:"tire_age"`
}
