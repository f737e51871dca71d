package race

import (
	"math"
	"time"

	"github.com/pitwall/race-strategy-rl/rl"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// weatherProb is the per-lap chance of the weather flipping.
const weatherProb = 0.1

// Config holds the static race parameters. Zero fields take the defaults,
// so callers only set what a scenario overrides.
type Config struct {
	TotalLaps   int
	BaseLapTime float64
	PitStopTime float64
	TrackTemp   float64
	// TireWearSeverity scales the fallback wear curve. 1 leaves the curve
	// untouched.
	TireWearSeverity float64
	// OvertakeDifficulty scales the traffic penalty. 1 leaves it untouched.
	OvertakeDifficulty float64
	// StartMin and StartMax bound the grid draw on Reset. Unset they cover
	// the full grid [1,20].
	StartMin int
	StartMax int
	// Oracle supplies trained degradation predictions. Nil installs the
	// untrained oracle, which selects the fallback curve.
	Oracle Oracle
	// Seed fixes the environment's random source. 0 seeds from the clock.
	Seed uint64
}

func DefaultConfig() *Config {
	return &Config{
		TotalLaps:          70,
		BaseLapTime:        85.0,
		PitStopTime:        24.0,
		TrackTemp:          35.0,
		TireWearSeverity:   1.0,
		OvertakeDifficulty: 1.0,
	}
}

func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	out := *c
	if out.TotalLaps <= 0 {
		out.TotalLaps = def.TotalLaps
	}
	if out.BaseLapTime <= 0 {
		out.BaseLapTime = def.BaseLapTime
	}
	if out.PitStopTime <= 0 {
		out.PitStopTime = def.PitStopTime
	}
	if out.TrackTemp <= 0 {
		out.TrackTemp = def.TrackTemp
	}
	if out.TireWearSeverity <= 0 {
		out.TireWearSeverity = def.TireWearSeverity
	}
	if out.OvertakeDifficulty <= 0 {
		out.OvertakeDifficulty = def.OvertakeDifficulty
	}
	if out.StartMin < 1 || out.StartMin > 20 {
		out.StartMin = 1
	}
	if out.StartMax < out.StartMin || out.StartMax > 20 {
		out.StartMax = 20
	}
	if out.Oracle == nil {
		out.Oracle = UntrainedOracle{}
	}
	return &out
}

// Environment simulates a single car over one race: one lap per step, with
// tire wear, traffic, pit-lane losses and stochastic weather. It owns all
// race state; only Reset and Step mutate it.
type Environment struct {
	config *Config
	oracle Oracle
	rand   *rand.Rand

	driver string
	track  string

	currentLap int
	tireAge    int
	compound   Compound
	position   int
	totalTime  float64
	pitStops   int
	wet        bool

	lapTimes   []float64
	pitHistory []rl.PitRecord
}

var _ rl.Environment = &Environment{}

func NewEnvironment(config *Config) *Environment {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := config.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	env := &Environment{
		config: cfg,
		oracle: cfg.Oracle,
		rand:   rand.New(rand.NewSource(seed)),
	}
	env.Reset("HAM", "Silverstone")
	return env
}

// Reset starts a fresh race: lap 1, medium tires, dry weather and a grid
// position drawn uniformly from the configured range.
func (e *Environment) Reset(driver, track string) rl.State {
	e.driver = driver
	e.track = track
	e.currentLap = 1
	e.tireAge = 0
	e.compound = Medium
	e.position = e.config.StartMin + e.rand.Intn(e.config.StartMax-e.config.StartMin+1)
	e.totalTime = 0
	e.pitStops = 0
	e.wet = false
	e.lapTimes = make([]float64, 0, e.config.TotalLaps)
	e.pitHistory = make([]rl.PitRecord, 0)
	return e.state()
}

// Step runs one lap under the given action. Pit actions serve the stop at
// the end of the lap: the pit-lane loss is added to the lap, the compound
// swaps, tire age zeroes and the car drops up to three positions.
func (e *Environment) Step(action rl.Action) (rl.State, float64, bool) {
	reward := float64(0)
	done := false

	lapTime := e.config.BaseLapTime + e.degradation()
	if e.position > 10 {
		lapTime += 0.1 * float64(e.position-10) * e.config.OvertakeDifficulty
	}

	if action.IsPit() {
		e.totalTime += lapTime + e.config.PitStopTime
		// A stop this late in the race on tires this worn is undercut
		// territory, judged on the age before the change.
		if e.currentLap > 15 && e.tireAge > 15 {
			reward += 5
		}
		switch action {
		case rl.PitSoft:
			e.compound = Soft
		case rl.PitMedium:
			e.compound = Medium
		case rl.PitHard:
			e.compound = Hard
		}
		e.tireAge = 0
		e.pitStops++
		loss := 3
		if 20-e.position < loss {
			loss = 20 - e.position
		}
		e.position += loss
		if e.position > 20 {
			e.position = 20
		}
		e.pitHistory = append(e.pitHistory, rl.PitRecord{
			Lap:      e.currentLap,
			Compound: e.compound.String(),
			Position: e.position,
		})
	} else {
		e.tireAge++
		e.totalTime += lapTime
	}

	e.lapTimes = append(e.lapTimes, lapTime)
	e.currentLap++

	if e.currentLap > e.config.TotalLaps {
		done = true
		reward -= e.totalTime / 100.0
		if e.pitStops >= 1 && e.pitStops <= 2 {
			reward += 10
		} else if e.pitStops == 0 || e.pitStops > 3 {
			reward -= 5
		}
	}

	reward -= 0.1

	if e.rand.Float64() < weatherProb {
		e.wet = !e.wet
		if e.wet {
			reward -= 2
		}
	}

	return e.state(), reward, done
}

func (e *Environment) degradation() float64 {
	var deg float64
	if e.oracle.IsTrained() {
		deg = e.oracle.PredictDegradation(e.tireAge, e.compound, e.driver, e.track,
			e.config.TrackTemp, e.currentLap, fuelLoad(e.currentLap))
	} else {
		age := float64(e.tireAge)
		deg = e.compound.BaseWearRate() * age * (1 + age*0.02) * e.config.TireWearSeverity
	}
	if deg < 0 {
		deg = 0
	}
	return deg
}

// fuelLoad estimates the remaining fuel in kg, burning down linearly from
// a full 110 kg tank.
func fuelLoad(lap int) float64 {
	return math.Max(0, 110-float64(lap)*1.8)
}

func (e *Environment) state() rl.State {
	deg := e.degradation()
	wet := float64(0)
	if e.wet {
		wet = 1
	}
	laps := float64(e.config.TotalLaps)
	return rl.State{
		clamp01(float64(e.currentLap) / laps),
		clamp01(float64(e.tireAge) / 50.0),
		clamp01(float64(e.compound) / 2.0),
		clamp01(float64(e.position) / 20.0),
		clamp01(math.Min(deg, 5.0) / 5.0),
		clamp01((laps - float64(e.currentLap)) / laps),
		wet,
		clamp01(float64(e.pitStops) / 3.0),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Telemetry reports the live car state used for strategy records.
func (e *Environment) Telemetry() rl.Telemetry {
	return rl.Telemetry{
		Lap:      e.currentLap,
		Position: e.position,
		TireAge:  e.tireAge,
	}
}

// SetPosition pins the car's track position, overriding the grid draw from
// Reset. Values are clamped to the grid.
func (e *Environment) SetPosition(position int) {
	if position < 1 {
		position = 1
	} else if position > 20 {
		position = 20
	}
	e.position = position
}

// Config returns a copy of the environment's static parameters.
func (e *Environment) Config() Config {
	return *e.config
}

// Summary reports on the race run so far. It is complete only after Step
// has returned done.
func (e *Environment) Summary() rl.RaceSummary {
	avg := float64(0)
	if len(e.lapTimes) > 0 {
		avg = stat.Mean(e.lapTimes, nil)
	}
	history := make([]rl.PitRecord, len(e.pitHistory))
	copy(history, e.pitHistory)
	return rl.RaceSummary{
		TotalTime:     e.totalTime,
		PitStops:      e.pitStops,
		PitHistory:    history,
		FinalPosition: e.position,
		AvgLapTime:    avg,
		LapsCompleted: len(e.lapTimes),
		Profile:       e.profile(),
	}
}

// profile replays the pit history against the recorded lap times to
// reconstruct tire age and compound lap by lap.
func (e *Environment) profile() []rl.LapRecord {
	profile := make([]rl.LapRecord, 0, len(e.lapTimes))
	age := 0
	compound := Medium
	for i, lapTime := range e.lapTimes {
		lap := i + 1
		for _, pit := range e.pitHistory {
			if pit.Lap == lap {
				compound = ParseCompound(pit.Compound)
				age = 0
				break
			}
		}
		profile = append(profile, rl.LapRecord{
			Lap:      lap,
			TireAge:  age,
			Compound: compound.String(),
			LapTime:  lapTime,
		})
		age++
	}
	return profile
}
