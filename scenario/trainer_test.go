package scenario

import (
	"context"
	"testing"

	"github.com/pitwall/race-strategy-rl/race"
)

func TestNewTrainerDefaults(t *testing.T) {
	config := &TrainerConfig{}
	NewTrainer(config)
	if config.Track != "Silverstone" {
		t.Errorf("default track = %q, want Silverstone", config.Track)
	}
	if config.RaceNumber != 12 {
		t.Errorf("default race number = %d, want 12", config.RaceNumber)
	}
	if len(config.Drivers) != 10 {
		t.Errorf("default roster has %d drivers, want 10", len(config.Drivers))
	}
	if config.EpisodesPerScenario != 50 {
		t.Errorf("default episodes = %d, want 50", config.EpisodesPerScenario)
	}
	if config.Oracle == nil || !config.Oracle.IsTrained() {
		t.Error("default oracle missing or untrained")
	}
	if config.Seed == 0 {
		t.Error("seed not drawn")
	}
}

func TestTrainerRun(t *testing.T) {
	trainer := NewTrainer(&TrainerConfig{
		Track:               "Monaco",
		RaceNumber:          6,
		Drivers:             []string{"HAM"},
		EpisodesPerScenario: 2,
		Oracle:              race.ConstantOracle{},
		Seed:                11,
		Quiet:               true,
	})

	agent, report, err := trainer.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.TotalEpisodes != 6 {
		t.Errorf("total episodes = %d, want 3 scenarios x 2", report.TotalEpisodes)
	}
	if agent.EpisodeCount() != 6 {
		t.Errorf("agent episodes = %d, want 6", agent.EpisodeCount())
	}
	if len(report.Scenarios) != 3 {
		t.Fatalf("scenarios = %v, want 3", report.Scenarios)
	}
	want := map[string]bool{"HAM_conservative": true, "HAM_aggressive": true, "HAM_balanced": true}
	for _, name := range report.Scenarios {
		if !want[name] {
			t.Errorf("unexpected scenario %q", name)
		}
		best, ok := report.BestByScenario[name]
		if !ok {
			t.Errorf("no best race for %q", name)
			continue
		}
		if best.TotalTime <= 0 || best.LapsCompleted != 78 {
			t.Errorf("%q best = %.1fs over %d laps, want a full Monaco race", name, best.TotalTime, best.LapsCompleted)
		}
	}
	if report.FinalExploration >= 0.8 {
		t.Errorf("exploration = %f, want decay below the start 0.8", report.FinalExploration)
	}
	if report.TableSize == 0 {
		t.Error("training left the value table empty")
	}
	if report.Insights.FastestTime <= 0 {
		t.Errorf("insights fastest = %f, want a real race time", report.Insights.FastestTime)
	}
}

func TestTrainerCanceled(t *testing.T) {
	trainer := NewTrainer(&TrainerConfig{
		Drivers:             []string{"HAM"},
		EpisodesPerScenario: 5,
		Seed:                13,
		Quiet:               true,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := trainer.Run(ctx)
	if err == nil {
		t.Fatal("run with canceled context succeeded")
	}
}
