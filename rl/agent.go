package rl

import (
	"errors"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// ErrNotTrained is returned when a strategy is requested from an agent that
// has not completed a single training episode.
var ErrNotTrained = errors.New("agent not trained")

// ExplorationMode selects how the agent picks actions while training.
type ExplorationMode string

const (
	// ExploreEpsilonGreedy draws a uniform action with probability epsilon
	// and exploits the value table otherwise.
	ExploreEpsilonGreedy ExplorationMode = "epsilon-greedy"
	// ExploreSoftmax samples actions with probability proportional to
	// exp(value/temperature).
	ExploreSoftmax ExplorationMode = "softmax"
	// ExploreRandom draws a uniform action on every training step.
	ExploreRandom ExplorationMode = "random"
)

type AgentConfig struct {
	LearningRate     float64
	DiscountFactor   float64
	Exploration      float64
	ExplorationDecay float64
	ExplorationFloor float64
	Mode             ExplorationMode
	// Temperature controls softmax sampling. Read only when Mode is
	// ExploreSoftmax.
	Temperature float64
	// Seed fixes the agent's random source. 0 seeds from the clock.
	Seed uint64
}

func DefaultAgentConfig() *AgentConfig {
	return &AgentConfig{
		LearningRate:     0.1,
		DiscountFactor:   0.95,
		Exploration:      1.0,
		ExplorationDecay: 0.995,
		ExplorationFloor: 0.01,
		Mode:             ExploreEpsilonGreedy,
		Temperature:      1.0,
	}
}

// Agent learns pit strategy by tabular Q-learning: it owns the value table,
// the exploration schedule and the per-episode training statistics. One
// agent must not be shared by concurrent training loops.
type Agent struct {
	table *QTable

	learningRate     float64
	discountFactor   float64
	exploration      float64
	explorationDecay float64
	explorationFloor float64
	mode             ExplorationMode
	temperature      float64

	trainingRewards []float64
	trainingTimes   []float64
	episodeCount    int

	rand *rand.Rand
}

func NewAgent(config *AgentConfig) *Agent {
	if config == nil {
		config = DefaultAgentConfig()
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	mode := config.Mode
	if mode == "" {
		mode = ExploreEpsilonGreedy
	}
	temperature := config.Temperature
	if temperature <= 0 {
		temperature = 1.0
	}
	return &Agent{
		table:            NewQTable(),
		learningRate:     config.LearningRate,
		discountFactor:   config.DiscountFactor,
		exploration:      config.Exploration,
		explorationDecay: config.ExplorationDecay,
		explorationFloor: config.ExplorationFloor,
		mode:             mode,
		temperature:      temperature,
		trainingRewards:  make([]float64, 0),
		trainingTimes:    make([]float64, 0),
		rand:             rand.New(rand.NewSource(seed)),
	}
}

// ChooseAction picks the next action for state. With exploring set the
// configured exploration mode applies; otherwise the best known action is
// returned, the lowest index winning ties.
func (a *Agent) ChooseAction(state State, exploring bool) Action {
	if exploring {
		switch a.mode {
		case ExploreRandom:
			return Action(a.rand.Intn(NumActions))
		case ExploreSoftmax:
			return a.sampleSoftmax(state)
		default:
			if a.rand.Float64() < a.exploration {
				return Action(a.rand.Intn(NumActions))
			}
		}
	}
	return a.table.BestAction(state.Key())
}

func (a *Agent) sampleSoftmax(state State) Action {
	row := a.table.Row(state.Key())
	weights := make([]float64, NumActions)
	sum := float64(0)
	for i, v := range row {
		e := math.Exp(v / a.temperature)
		weights[i] = e
		sum += e
	}
	for i := range weights {
		weights[i] = weights[i] / sum
	}
	i, ok := sampleuv.NewWeighted(weights, a.rand).Take()
	if !ok {
		return a.table.BestAction(state.Key())
	}
	return Action(i)
}

// Update applies the one-step Q-learning rule to a single transition.
func (a *Agent) Update(state State, action Action, reward float64, next State, done bool) {
	key := state.Key()
	target := reward
	if !done {
		target = reward + a.discountFactor*a.table.Max(next.Key())
	}
	current := a.table.Get(key, action)
	a.table.Set(key, action, current+a.learningRate*(target-current))
}

// DecayExploration lowers the exploration rate by one episode step, never
// below the configured floor.
func (a *Agent) DecayExploration() {
	a.exploration = math.Max(a.explorationFloor, a.exploration*a.explorationDecay)
}

// TrainEpisode runs one complete race with exploration enabled, updating
// the value table after every step. Returns the accumulated reward and the
// finished race summary.
func (a *Agent) TrainEpisode(env Environment, driver, track string) (float64, RaceSummary) {
	state := env.Reset(driver, track)
	total := float64(0)
	for {
		action := a.ChooseAction(state, true)
		next, reward, done := env.Step(action)
		a.Update(state, action, reward, next, done)
		total += reward
		state = next
		if done {
			break
		}
	}
	a.DecayExploration()
	summary := env.Summary()
	a.trainingRewards = append(a.trainingRewards, total)
	a.trainingTimes = append(a.trainingTimes, summary.TotalTime)
	a.episodeCount++
	return total, summary
}

// PredictStrategy replays the learned policy with exploration disabled and
// returns the pit schedule it calls together with the finished race
// summary. Each schedule entry records the telemetry at decision time.
func (a *Agent) PredictStrategy(env Environment, driver, track string) ([]PitStop, RaceSummary, error) {
	if a.episodeCount == 0 {
		return nil, RaceSummary{}, ErrNotTrained
	}
	state := env.Reset(driver, track)
	schedule := make([]PitStop, 0)
	for {
		action := a.ChooseAction(state, false)
		if action.IsPit() {
			tel := env.Telemetry()
			schedule = append(schedule, PitStop{
				Lap:      tel.Lap,
				Compound: action.Compound(),
				Position: tel.Position,
				TireAge:  tel.TireAge,
			})
		}
		next, _, done := env.Step(action)
		state = next
		if done {
			break
		}
	}
	return schedule, env.Summary(), nil
}

// Table exposes the value table, primarily for inspection and tests.
func (a *Agent) Table() *QTable {
	return a.table
}

// Exploration returns the current exploration rate.
func (a *Agent) Exploration() float64 {
	return a.exploration
}

// LearningRate returns the configured learning rate.
func (a *Agent) LearningRate() float64 {
	return a.learningRate
}

// DiscountFactor returns the configured discount factor.
func (a *Agent) DiscountFactor() float64 {
	return a.discountFactor
}

// EpisodeCount returns the number of completed training episodes.
func (a *Agent) EpisodeCount() int {
	return a.episodeCount
}

// TrainingRewards returns the per-episode reward history.
func (a *Agent) TrainingRewards() []float64 {
	return a.trainingRewards
}

// TrainingTimes returns the per-episode race time history.
func (a *Agent) TrainingTimes() []float64 {
	return a.trainingTimes
}
