package race

import (
	"math"
	"testing"

	"github.com/pitwall/race-strategy-rl/rl"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func cleanEnv(seed uint64) *Environment {
	env := NewEnvironment(&Config{Oracle: ConstantOracle{}, Seed: seed})
	env.Reset("HAM", "Silverstone")
	env.SetPosition(5)
	return env
}

func TestResetState(t *testing.T) {
	env := NewEnvironment(&Config{Seed: 7})
	state := env.Reset("VER", "Monaco")
	for i, v := range state {
		if v < 0 || v > 1 {
			t.Errorf("state[%d] = %f, want within [0,1]", i, v)
		}
	}
	tel := env.Telemetry()
	if tel.Lap != 1 {
		t.Errorf("lap after reset = %d, want 1", tel.Lap)
	}
	if tel.TireAge != 0 {
		t.Errorf("tire age after reset = %d, want 0", tel.TireAge)
	}
	if tel.Position < 1 || tel.Position > 20 {
		t.Errorf("position after reset = %d, want within [1,20]", tel.Position)
	}
}

func TestEpisodeLength(t *testing.T) {
	env := NewEnvironment(&Config{Seed: 11})
	env.Reset("HAM", "Silverstone")
	steps := 0
	for {
		_, _, done := env.Step(rl.Stay)
		steps++
		if done {
			break
		}
		if steps > 1000 {
			t.Fatal("episode did not terminate")
		}
	}
	if steps != 70 {
		t.Errorf("episode length = %d steps, want 70", steps)
	}
	if got := env.Summary().LapsCompleted; got != 70 {
		t.Errorf("laps completed = %d, want 70", got)
	}
}

func TestZeroStopRace(t *testing.T) {
	env := cleanEnv(3)
	var lastReward float64
	for {
		_, reward, done := env.Step(rl.Stay)
		if done {
			lastReward = reward
			break
		}
	}
	summary := env.Summary()
	want := 70 * 85.0
	if !almostEqual(summary.TotalTime, want) {
		t.Errorf("total time = %f, want %f", summary.TotalTime, want)
	}
	if summary.PitStops != 0 {
		t.Errorf("pit stops = %d, want 0", summary.PitStops)
	}
	if !almostEqual(summary.AvgLapTime, 85.0) {
		t.Errorf("average lap time = %f, want 85.0", summary.AvgLapTime)
	}
	// Terminal reward: -totalTime/100, -5 for no stops, -0.1 per step,
	// and possibly -2 if the weather turned on the final lap.
	base := -want/100.0 - 5 - 0.1
	if !almostEqual(lastReward, base) && !almostEqual(lastReward, base-2) {
		t.Errorf("terminal reward = %f, want %f or %f", lastReward, base, base-2)
	}
}

func TestSingleStopRace(t *testing.T) {
	env := cleanEnv(5)
	var pitReward, lastReward float64
	for lap := 1; lap <= 70; lap++ {
		action := rl.Stay
		if lap == 30 {
			action = rl.PitHard
		}
		_, reward, done := env.Step(action)
		if lap == 30 {
			pitReward = reward
		}
		if done {
			lastReward = reward
		}
	}
	summary := env.Summary()
	want := 70*85.0 + 24.0
	if !almostEqual(summary.TotalTime, want) {
		t.Errorf("total time = %f, want %f", summary.TotalTime, want)
	}
	if summary.PitStops != 1 {
		t.Fatalf("pit stops = %d, want 1", summary.PitStops)
	}
	if !almostEqual(summary.AvgLapTime, 85.0) {
		t.Errorf("average lap time = %f, want 85.0 (pit loss is not a lap time)", summary.AvgLapTime)
	}
	pit := summary.PitHistory[0]
	if pit.Lap != 30 {
		t.Errorf("pit lap = %d, want 30", pit.Lap)
	}
	if pit.Compound != "HARD" {
		t.Errorf("pit compound = %q, want HARD", pit.Compound)
	}
	if pit.Position != 8 {
		t.Errorf("position after pit = %d, want 8", pit.Position)
	}
	// Undercut bonus: lap 30 on 29-lap-old tires, minus the step cost.
	wantPit := 5.0 - 0.1
	if !almostEqual(pitReward, wantPit) && !almostEqual(pitReward, wantPit-2) {
		t.Errorf("pit reward = %f, want %f or %f", pitReward, wantPit, wantPit-2)
	}
	base := -want/100.0 + 10 - 0.1
	if !almostEqual(lastReward, base) && !almostEqual(lastReward, base-2) {
		t.Errorf("terminal reward = %f, want %f or %f", lastReward, base, base-2)
	}
}

func TestPitResetsTireAge(t *testing.T) {
	env := cleanEnv(9)
	for i := 0; i < 20; i++ {
		env.Step(rl.Stay)
	}
	if age := env.Telemetry().TireAge; age != 20 {
		t.Fatalf("tire age after 20 laps = %d, want 20", age)
	}
	env.Step(rl.PitSoft)
	if age := env.Telemetry().TireAge; age != 0 {
		t.Errorf("tire age after pit = %d, want 0", age)
	}
}

func TestEarlyPitNoUndercut(t *testing.T) {
	env := cleanEnv(13)
	for i := 0; i < 9; i++ {
		env.Step(rl.Stay)
	}
	// Lap 10 on 9-lap-old tires: no undercut bonus either way.
	_, reward, _ := env.Step(rl.PitMedium)
	if !almostEqual(reward, -0.1) && !almostEqual(reward, -0.1-2) {
		t.Errorf("early pit reward = %f, want -0.1 or -2.1", reward)
	}
}

func TestPositionLossCapped(t *testing.T) {
	env := cleanEnv(17)
	env.SetPosition(19)
	env.Step(rl.PitSoft)
	if pos := env.Telemetry().Position; pos != 20 {
		t.Errorf("position after pit from P19 = %d, want 20", pos)
	}
	env.SetPosition(20)
	env.Step(rl.PitSoft)
	if pos := env.Telemetry().Position; pos != 20 {
		t.Errorf("position after pit from P20 = %d, want 20", pos)
	}
}

func TestTrafficPenalty(t *testing.T) {
	env := cleanEnv(19)
	env.SetPosition(15)
	env.Step(rl.Stay)
	want := 85.0 + 0.1*5
	if got := env.Summary().TotalTime; !almostEqual(got, want) {
		t.Errorf("lap time at P15 = %f, want %f", got, want)
	}
}

func TestFallbackDegradation(t *testing.T) {
	env := NewEnvironment(&Config{Seed: 23})
	env.Reset("HAM", "Silverstone")
	env.SetPosition(5)
	env.Step(rl.Stay)
	env.Step(rl.Stay)
	// Lap 1 on fresh mediums is a clean 85.0; lap 2 wears at
	// 0.04 * 1 * 1.02.
	want := 85.0 + 85.0 + 0.04*1*1.02
	if got := env.Summary().TotalTime; !almostEqual(got, want) {
		t.Errorf("total after two laps = %f, want %f", got, want)
	}
}

func TestWearSeverityScalesFallback(t *testing.T) {
	base := NewEnvironment(&Config{Seed: 29})
	harsh := NewEnvironment(&Config{Seed: 29, TireWearSeverity: 2.0})
	for _, env := range []*Environment{base, harsh} {
		env.Reset("HAM", "Silverstone")
		env.SetPosition(5)
		env.Step(rl.Stay)
		env.Step(rl.Stay)
	}
	diff := harsh.Summary().TotalTime - base.Summary().TotalTime
	if !almostEqual(diff, 0.04*1*1.02) {
		t.Errorf("severity 2.0 added %f over severity 1.0, want %f", diff, 0.04*1*1.02)
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := NewEnvironment(&Config{Seed: 42})
	b := NewEnvironment(&Config{Seed: 42})
	stateA := a.Reset("LEC", "Spa")
	stateB := b.Reset("LEC", "Spa")
	if stateA != stateB {
		t.Fatalf("reset states differ: %v vs %v", stateA, stateB)
	}
	actions := []rl.Action{rl.Stay, rl.Stay, rl.PitSoft, rl.Stay, rl.PitHard, rl.Stay}
	for i, action := range actions {
		sa, ra, da := a.Step(action)
		sb, rb, db := b.Step(action)
		if sa != sb || ra != rb || da != db {
			t.Fatalf("step %d diverged: (%v, %f, %v) vs (%v, %f, %v)", i, sa, ra, da, sb, rb, db)
		}
	}
}

func TestStateBoundsUnderRollout(t *testing.T) {
	env := NewEnvironment(&Config{Seed: 31})
	env.Reset("HAM", "Silverstone")
	actions := []rl.Action{rl.Stay, rl.PitSoft, rl.Stay, rl.PitMedium, rl.PitHard}
	for i := 0; ; i++ {
		state, _, done := env.Step(actions[i%len(actions)])
		for j, v := range state {
			if v < 0 || v > 1 {
				t.Fatalf("step %d: state[%d] = %f outside [0,1]", i, j, v)
			}
		}
		if pos := env.Telemetry().Position; pos < 1 || pos > 20 {
			t.Fatalf("step %d: position %d outside [1,20]", i, pos)
		}
		if done {
			break
		}
	}
}

func TestPredictDeterminism(t *testing.T) {
	agent := rl.NewAgent(&rl.AgentConfig{
		LearningRate:     0.1,
		DiscountFactor:   0.95,
		Exploration:      1.0,
		ExplorationDecay: 0.99,
		ExplorationFloor: 0.01,
		Seed:             53,
	})
	train := NewEnvironment(&Config{Seed: 53})
	for i := 0; i < 5; i++ {
		agent.TrainEpisode(train, "HAM", "Silverstone")
	}

	runA := NewEnvironment(&Config{Seed: 61})
	runB := NewEnvironment(&Config{Seed: 61})
	scheduleA, summaryA, err := agent.PredictStrategy(runA, "HAM", "Silverstone")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	scheduleB, summaryB, err := agent.PredictStrategy(runB, "HAM", "Silverstone")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if len(scheduleA) != len(scheduleB) {
		t.Fatalf("schedules differ in length: %d vs %d", len(scheduleA), len(scheduleB))
	}
	for i := range scheduleA {
		if scheduleA[i] != scheduleB[i] {
			t.Errorf("stop %d differs: %+v vs %+v", i, scheduleA[i], scheduleB[i])
		}
	}
	if !almostEqual(summaryA.TotalTime, summaryB.TotalTime) {
		t.Errorf("total times differ: %f vs %f", summaryA.TotalTime, summaryB.TotalTime)
	}
	if summaryA.FinalPosition != summaryB.FinalPosition || summaryA.PitStops != summaryB.PitStops {
		t.Errorf("summaries differ: %+v vs %+v", summaryA, summaryB)
	}
}

func TestSummaryProfile(t *testing.T) {
	env := cleanEnv(37)
	for lap := 1; lap <= 70; lap++ {
		action := rl.Stay
		if lap == 25 {
			action = rl.PitSoft
		}
		env.Step(action)
	}
	profile := env.Summary().Profile
	if len(profile) != 70 {
		t.Fatalf("profile length = %d, want 70", len(profile))
	}
	first := profile[0]
	if first.TireAge != 0 || first.Compound != "MEDIUM" {
		t.Errorf("lap 1 profile = age %d on %s, want age 0 on MEDIUM", first.TireAge, first.Compound)
	}
	atPit := profile[24]
	if atPit.TireAge != 0 || atPit.Compound != "SOFT" {
		t.Errorf("lap 25 profile = age %d on %s, want age 0 on SOFT", atPit.TireAge, atPit.Compound)
	}
	last := profile[69]
	if last.TireAge != 45 || last.Compound != "SOFT" {
		t.Errorf("lap 70 profile = age %d on %s, want age 45 on SOFT", last.TireAge, last.Compound)
	}
}

func TestSummaryCopiesHistory(t *testing.T) {
	env := cleanEnv(41)
	env.Step(rl.PitSoft)
	summary := env.Summary()
	summary.PitHistory[0].Lap = 99
	if env.Summary().PitHistory[0].Lap != 1 {
		t.Error("mutating a summary changed the environment's history")
	}
}

func TestSetPositionClamps(t *testing.T) {
	env := cleanEnv(43)
	env.SetPosition(0)
	if pos := env.Telemetry().Position; pos != 1 {
		t.Errorf("position = %d, want clamp to 1", pos)
	}
	env.SetPosition(25)
	if pos := env.Telemetry().Position; pos != 20 {
		t.Errorf("position = %d, want clamp to 20", pos)
	}
}

func TestConfigDefaults(t *testing.T) {
	env := NewEnvironment(nil)
	cfg := env.Config()
	if cfg.TotalLaps != 70 || cfg.BaseLapTime != 85.0 || cfg.PitStopTime != 24.0 {
		t.Errorf("defaults = %d laps, %.1f base, %.1f pit; want 70, 85.0, 24.0", cfg.TotalLaps, cfg.BaseLapTime, cfg.PitStopTime)
	}
	short := NewEnvironment(&Config{TotalLaps: 44, Seed: 47})
	short.Reset("HAM", "Silverstone")
	steps := 0
	for {
		_, _, done := short.Step(rl.Stay)
		steps++
		if done {
			break
		}
	}
	if steps != 44 {
		t.Errorf("episode length = %d, want configured 44", steps)
	}
}
