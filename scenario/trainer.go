package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/pitwall/race-strategy-rl/race"
	"github.com/pitwall/race-strategy-rl/rl"
	"gonum.org/v1/gonum/stat"
)

type TrainerConfig struct {
	Track      string
	RaceNumber int
	Drivers    []string
	// EpisodesPerScenario is how many races each driver/posture pairing
	// trains for.
	EpisodesPerScenario int
	Oracle              race.Oracle
	Seed                uint64
	Quiet               bool
}

// Report carries everything the weekend briefing needs: which scenarios
// trained, the best race each produced, and the distilled insights.
type Report struct {
	Track            string                    `json:"track"`
	RaceNumber       int                       `json:"race_number"`
	Scenarios        []string                  `json:"scenarios_trained"`
	BestByScenario   map[string]rl.RaceSummary `json:"best_strategies_by_scenario"`
	TotalEpisodes    int                       `json:"total_episodes"`
	FinalExploration float64                   `json:"final_exploration"`
	TableSize        int                       `json:"table_size"`
	Insights         Insights                  `json:"track_specific_insights"`
}

// Trainer prepares one race weekend the way a strategy group does: a single
// agent trains across every scenario in the matrix, so the learned policy
// has seen front-running defense and midfield attack on the same track.
type Trainer struct {
	config *TrainerConfig
}

func NewTrainer(config *TrainerConfig) *Trainer {
	if config.Track == "" {
		config.Track = "Silverstone"
	}
	if config.RaceNumber <= 0 {
		config.RaceNumber = 12
	}
	if len(config.Drivers) == 0 {
		config.Drivers = DefaultDrivers()
	}
	if config.EpisodesPerScenario <= 0 {
		config.EpisodesPerScenario = 50
	}
	if config.Oracle == nil {
		config.Oracle = race.CurveOracle{}
	}
	if config.Seed == 0 {
		config.Seed = uint64(time.Now().UnixNano())
	}
	return &Trainer{config: config}
}

// Run trains the scenario matrix and returns the trained agent with the
// weekend report. The context is checked between episodes.
func (t *Trainer) Run(ctx context.Context) (*rl.Agent, *Report, error) {
	cfg := t.config
	agent := rl.NewAgent(&rl.AgentConfig{
		LearningRate:     0.15,
		DiscountFactor:   0.95,
		Exploration:      0.8,
		ExplorationDecay: 0.995,
		ExplorationFloor: 0.05,
		Seed:             cfg.Seed,
	})

	scenarios := BuildScenarios(cfg.Track, cfg.RaceNumber, cfg.Drivers)
	if !cfg.Quiet {
		fmt.Printf("Scenario training: %s, race %d/%d, %d scenarios x %d episodes\n",
			cfg.Track, cfg.RaceNumber, seasonRounds, len(scenarios), cfg.EpisodesPerScenario)
	}

	report := &Report{
		Track:          cfg.Track,
		RaceNumber:     cfg.RaceNumber,
		Scenarios:      make([]string, 0, len(scenarios)),
		BestByScenario: make(map[string]rl.RaceSummary, len(scenarios)),
	}

	for i, sc := range scenarios {
		env := sc.Environment(cfg.Oracle, cfg.Seed+uint64(i)+1)
		times := make([]float64, 0, cfg.EpisodesPerScenario)
		best := rl.RaceSummary{TotalTime: -1}

		for episode := 0; episode < cfg.EpisodesPerScenario; episode++ {
			select {
			case <-ctx.Done():
				return agent, report, ctx.Err()
			default:
			}

			_, summary := agent.TrainEpisode(env, sc.Driver, sc.Track.Name)
			times = append(times, summary.TotalTime)
			report.TotalEpisodes++
			if best.TotalTime < 0 || summary.TotalTime < best.TotalTime {
				best = summary
			}

			if !cfg.Quiet && (episode+1)%20 == 0 {
				recent := times
				if len(recent) > 10 {
					recent = recent[len(recent)-10:]
				}
				fmt.Printf("  %s episode %d: avg time %.1fs\n", sc.Name(), episode+1, stat.Mean(recent, nil))
			}
		}

		report.Scenarios = append(report.Scenarios, sc.Name())
		report.BestByScenario[sc.Name()] = best
		if !cfg.Quiet {
			fmt.Printf("  %s best: %.1fs, %d stops\n", sc.Name(), best.TotalTime, best.PitStops)
		}
	}

	bestRaces := make([]rl.RaceSummary, 0, len(report.BestByScenario))
	for _, summary := range report.BestByScenario {
		bestRaces = append(bestRaces, summary)
	}
	report.Insights = BuildInsights(bestRaces)
	report.FinalExploration = agent.Exploration()
	report.TableSize = agent.Table().Len()

	if !cfg.Quiet {
		fmt.Printf("Training complete: %d episodes, pit window laps %d-%d, fastest %.1fs\n",
			report.TotalEpisodes, report.Insights.PitWindow[0], report.Insights.PitWindow[1],
			report.Insights.FastestTime)
	}
	return agent, report, nil
}
