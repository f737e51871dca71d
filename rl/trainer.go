package rl

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// EpisodeStats captures one completed training episode for reporting.
type EpisodeStats struct {
	Episode     int     `json:"episode"`
	Driver      string  `json:"driver"`
	Track       string  `json:"track"`
	Reward      float64 `json:"reward"`
	TotalTime   float64 `json:"total_time"`
	PitStops    int     `json:"pit_stops"`
	Exploration float64 `json:"exploration"`
}

type TrainerConfig struct {
	Episodes int
	// Drivers and Tracks are the pools sampled uniformly per episode.
	Drivers []string
	Tracks  []string
	// ProgressEvery sets how many episodes pass between progress lines.
	// 0 keeps the default of 100.
	ProgressEvery int
	// Quiet suppresses progress output entirely.
	Quiet bool
	// OnEpisode, when set, receives every completed episode.
	OnEpisode func(EpisodeStats)
	// Seed fixes driver/track sampling. 0 seeds from the clock.
	Seed uint64
}

// Trainer drives an agent through many simulated races, sampling a driver
// and a track for each episode and tracking the fastest race seen.
type Trainer struct {
	config *TrainerConfig
	agent  *Agent
	env    Environment
	rand   *rand.Rand
}

func NewTrainer(config *TrainerConfig, agent *Agent, env Environment) *Trainer {
	if len(config.Drivers) == 0 {
		config.Drivers = []string{"HAM", "VER", "LEC"}
	}
	if len(config.Tracks) == 0 {
		config.Tracks = []string{"Silverstone", "Monaco", "Spa"}
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Trainer{
		config: config,
		agent:  agent,
		env:    env,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Run trains for the configured number of episodes and returns the summary
// of the fastest race seen. The context is checked between episodes only;
// a started episode always runs to completion.
func (t *Trainer) Run(ctx context.Context) (RaceSummary, error) {
	every := t.config.ProgressEvery
	if every <= 0 {
		every = 100
	}
	best := RaceSummary{TotalTime: math.Inf(1)}
	for episode := 0; episode < t.config.Episodes; episode++ {
		select {
		case <-ctx.Done():
			return best, ctx.Err()
		default:
		}

		driver := t.config.Drivers[t.rand.Intn(len(t.config.Drivers))]
		track := t.config.Tracks[t.rand.Intn(len(t.config.Tracks))]
		reward, summary := t.agent.TrainEpisode(t.env, driver, track)
		if summary.TotalTime < best.TotalTime {
			best = summary
		}

		if t.config.OnEpisode != nil {
			t.config.OnEpisode(EpisodeStats{
				Episode:     t.agent.EpisodeCount(),
				Driver:      driver,
				Track:       track,
				Reward:      reward,
				TotalTime:   summary.TotalTime,
				PitStops:    summary.PitStops,
				Exploration: t.agent.Exploration(),
			})
		}

		if !t.config.Quiet && (episode+1)%every == 0 {
			avgReward := stat.Mean(tail(t.agent.TrainingRewards(), 100), nil)
			avgTime := stat.Mean(tail(t.agent.TrainingTimes(), 100), nil)
			fmt.Printf("\rEpisode %5d/%d | Avg Reward: %7.2f | Avg Time: %7.1fs | Epsilon: %.3f | Best: %.1fs",
				episode+1, t.config.Episodes, avgReward, avgTime, t.agent.Exploration(), best.TotalTime)
		}
	}
	if !t.config.Quiet {
		fmt.Println()
	}
	return best, nil
}

func tail(vals []float64, n int) []float64 {
	if len(vals) > n {
		return vals[len(vals)-n:]
	}
	return vals
}
