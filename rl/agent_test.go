package rl

import (
	"errors"
	"math"
	"testing"
)

// stubEnv is a fixed-length chain: staying pays +1 per step, pitting pays
// -1, so the only optimal policy is to never pit. States sit mid-bucket to
// keep their keys stable.
type stubEnv struct {
	maxSteps int
	steps    int
	pits     int
	resets   int
}

var _ Environment = &stubEnv{}

func newStubEnv(maxSteps int) *stubEnv {
	return &stubEnv{maxSteps: maxSteps}
}

func (s *stubEnv) stateAt(step int) State {
	var st State
	st[0] = 0.05 + 0.1*float64(step)
	return st
}

func (s *stubEnv) Reset(driver, track string) State {
	s.steps = 0
	s.pits = 0
	s.resets++
	return s.stateAt(0)
}

func (s *stubEnv) Step(action Action) (State, float64, bool) {
	s.steps++
	reward := 1.0
	if action.IsPit() {
		s.pits++
		reward = -1.0
	}
	return s.stateAt(s.steps), reward, s.steps >= s.maxSteps
}

func (s *stubEnv) Summary() RaceSummary {
	return RaceSummary{
		TotalTime:     float64(100 + 10*s.pits),
		PitStops:      s.pits,
		FinalPosition: 5,
		AvgLapTime:    20,
		LapsCompleted: s.steps,
	}
}

func (s *stubEnv) Telemetry() Telemetry {
	return Telemetry{Lap: s.steps + 1, Position: 5, TireAge: s.steps}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testAgentConfig() *AgentConfig {
	return &AgentConfig{
		LearningRate:     0.5,
		DiscountFactor:   0.9,
		Exploration:      1.0,
		ExplorationDecay: 0.5,
		ExplorationFloor: 0.3,
		Seed:             1,
	}
}

func TestUpdateBellman(t *testing.T) {
	agent := NewAgent(testAgentConfig())
	state := State{0.05}
	next := State{0.15}
	agent.Table().Set(next.Key(), PitSoft, 2)

	agent.Update(state, Stay, 1, next, false)
	want := 0.5 * (1 + 0.9*2)
	if got := agent.Table().Get(state.Key(), Stay); !almostEqual(got, want) {
		t.Errorf("after one update Q = %f, want %f", got, want)
	}

	agent.Update(state, Stay, 1, next, false)
	want = want + 0.5*((1+0.9*2)-want)
	if got := agent.Table().Get(state.Key(), Stay); !almostEqual(got, want) {
		t.Errorf("after two updates Q = %f, want %f", got, want)
	}
}

func TestUpdateTerminal(t *testing.T) {
	agent := NewAgent(testAgentConfig())
	state := State{0.05}
	next := State{0.15}
	agent.Table().Set(next.Key(), PitSoft, 100)

	agent.Update(state, PitHard, 7, next, true)
	if got := agent.Table().Get(state.Key(), PitHard); !almostEqual(got, 3.5) {
		t.Errorf("terminal update Q = %f, want 3.5 with no bootstrap", got)
	}
}

func TestDecayExplorationFloor(t *testing.T) {
	agent := NewAgent(testAgentConfig())
	agent.DecayExploration()
	if got := agent.Exploration(); !almostEqual(got, 0.5) {
		t.Fatalf("exploration after one decay = %f, want 0.5", got)
	}
	agent.DecayExploration()
	if got := agent.Exploration(); !almostEqual(got, 0.3) {
		t.Fatalf("exploration hit %f, want the 0.3 floor", got)
	}
	agent.DecayExploration()
	if got := agent.Exploration(); !almostEqual(got, 0.3) {
		t.Errorf("exploration fell to %f below the floor", got)
	}
}

func TestChooseActionGreedy(t *testing.T) {
	config := testAgentConfig()
	config.Exploration = 0
	agent := NewAgent(config)
	state := State{0.05}
	agent.Table().Set(state.Key(), PitMedium, 3)

	for i := 0; i < 50; i++ {
		if got := agent.ChooseAction(state, true); got != PitMedium {
			t.Fatalf("zero-exploration training pick = %v, want PitMedium", got)
		}
	}

	explorer := NewAgent(testAgentConfig())
	explorer.Table().Set(state.Key(), PitMedium, 3)
	for i := 0; i < 50; i++ {
		if got := explorer.ChooseAction(state, false); got != PitMedium {
			t.Fatalf("greedy pick = %v, want PitMedium despite exploration 1.0", got)
		}
	}
}

func TestChooseActionRandomMode(t *testing.T) {
	config := testAgentConfig()
	config.Mode = ExploreRandom
	agent := NewAgent(config)
	state := State{0.05}
	agent.Table().Set(state.Key(), Stay, 100)

	seen := make(map[Action]int)
	for i := 0; i < 200; i++ {
		seen[agent.ChooseAction(state, true)]++
	}
	for _, a := range AllActions {
		if seen[a] == 0 {
			t.Errorf("random mode never drew %v in 200 picks", a)
		}
	}
}

func TestChooseActionSoftmax(t *testing.T) {
	config := testAgentConfig()
	config.Mode = ExploreSoftmax
	config.Temperature = 1.0
	agent := NewAgent(config)
	state := State{0.05}
	agent.Table().Set(state.Key(), PitHard, 10)

	picks := 0
	for i := 0; i < 200; i++ {
		if agent.ChooseAction(state, true) == PitHard {
			picks++
		}
	}
	if picks < 150 {
		t.Errorf("softmax drew the dominant action %d/200 times, want a clear majority", picks)
	}
	if got := agent.ChooseAction(state, false); got != PitHard {
		t.Errorf("greedy pick under softmax mode = %v, want PitHard", got)
	}
}

func TestTrainEpisode(t *testing.T) {
	agent := NewAgent(testAgentConfig())
	env := newStubEnv(5)

	total, summary := agent.TrainEpisode(env, "HAM", "Silverstone")
	if agent.EpisodeCount() != 1 {
		t.Errorf("episode count = %d, want 1", agent.EpisodeCount())
	}
	if summary.LapsCompleted != 5 {
		t.Errorf("laps completed = %d, want 5", summary.LapsCompleted)
	}
	if len(agent.TrainingRewards()) != 1 || !almostEqual(agent.TrainingRewards()[0], total) {
		t.Errorf("reward history = %v, want [%f]", agent.TrainingRewards(), total)
	}
	if len(agent.TrainingTimes()) != 1 || !almostEqual(agent.TrainingTimes()[0], summary.TotalTime) {
		t.Errorf("time history = %v, want [%f]", agent.TrainingTimes(), summary.TotalTime)
	}
	if got := agent.Exploration(); !almostEqual(got, 0.5) {
		t.Errorf("exploration after one episode = %f, want 0.5", got)
	}
	if agent.Table().Len() == 0 {
		t.Error("training wrote nothing to the value table")
	}
}

func TestTrainEpisodeLearnsStay(t *testing.T) {
	config := DefaultAgentConfig()
	config.Seed = 7
	agent := NewAgent(config)
	env := newStubEnv(5)

	for i := 0; i < 400; i++ {
		agent.TrainEpisode(env, "HAM", "Silverstone")
	}
	for step := 0; step < 5; step++ {
		state := env.stateAt(step)
		if got := agent.ChooseAction(state, false); got != Stay {
			t.Errorf("learned policy at step %d = %v, want Stay", step, got)
		}
	}
}

func TestPredictStrategyNotTrained(t *testing.T) {
	agent := NewAgent(testAgentConfig())
	_, _, err := agent.PredictStrategy(newStubEnv(5), "HAM", "Silverstone")
	if !errors.Is(err, ErrNotTrained) {
		t.Errorf("predict on fresh agent = %v, want ErrNotTrained", err)
	}
}

func TestPredictStrategySchedule(t *testing.T) {
	agent := NewAgent(testAgentConfig())
	env := newStubEnv(5)
	agent.TrainEpisode(env, "HAM", "Silverstone")

	// Pin the policy: pit for mediums off the line, stay out after.
	for step := 0; step < 5; step++ {
		key := env.stateAt(step).Key()
		for _, a := range AllActions {
			agent.Table().Set(key, a, 0)
		}
		agent.Table().Set(key, Stay, 1)
	}
	agent.Table().Set(env.stateAt(0).Key(), PitMedium, 5)

	schedule, summary, err := agent.PredictStrategy(env, "HAM", "Silverstone")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(schedule) != 1 {
		t.Fatalf("schedule = %v, want exactly one stop", schedule)
	}
	stop := schedule[0]
	if stop.Lap != 1 || stop.Compound != "MEDIUM" || stop.Position != 5 || stop.TireAge != 0 {
		t.Errorf("stop = %+v, want lap 1 for mediums at P5 on fresh tires", stop)
	}
	if summary.PitStops != 1 {
		t.Errorf("summary pit stops = %d, want 1", summary.PitStops)
	}
	if summary.LapsCompleted != 5 {
		t.Errorf("summary laps = %d, want the full 5", summary.LapsCompleted)
	}
}
