package rl

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Experiment trains one freshly built agent against its own environment
// and keeps the per-episode statistics for analysis. Environments must not
// be shared between experiments.
type Experiment struct {
	name   string
	agent  *AgentConfig
	train  *TrainerConfig
	env    Environment
	Result []EpisodeStats
	Best   RaceSummary
}

func NewExperiment(name string, agent *AgentConfig, train *TrainerConfig, env Environment) *Experiment {
	return &Experiment{
		name:   name,
		agent:  agent,
		train:  train,
		env:    env,
		Result: make([]EpisodeStats, 0),
	}
}

func (e *Experiment) Run(ctx context.Context) error {
	fmt.Printf("Running experiment: %s\n", e.name)
	agent := NewAgent(e.agent)
	cfg := *e.train
	cfg.Quiet = true
	cfg.OnEpisode = func(s EpisodeStats) {
		e.Result = append(e.Result, s)
	}
	best, err := NewTrainer(&cfg, agent, e.env).Run(ctx)
	if err != nil {
		return fmt.Errorf("experiment %s: %w", e.name, err)
	}
	e.Best = best
	fmt.Printf("Experiment %s done: best race %.1fs, %d pit stops\n", e.name, best.TotalTime, best.PitStops)
	return nil
}

type DataSet interface{}

type Analyzer func([]EpisodeStats) DataSet

type Comparator func(names []string, datasets []DataSet)

type analysis struct {
	analyzer   Analyzer
	comparator Comparator
}

// Comparison runs a set of experiments and feeds their statistics through
// each registered analysis.
type Comparison struct {
	Experiments []*Experiment
	analyses    []analysis
	parallel    bool
}

func NewComparison(parallel bool) *Comparison {
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyses:    make([]analysis, 0),
		parallel:    parallel,
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) AddAnalysis(analyzer Analyzer, comparator Comparator) {
	c.analyses = append(c.analyses, analysis{analyzer: analyzer, comparator: comparator})
}

// Run executes the experiments, in parallel when configured. Experiments
// own independent agents and environments, so no state is shared between
// the goroutines.
func (c *Comparison) Run(ctx context.Context) error {
	if c.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, e := range c.Experiments {
			e := e
			g.Go(func() error {
				return e.Run(gctx)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, e := range c.Experiments {
			if err := e.Run(ctx); err != nil {
				return err
			}
		}
	}

	names := make([]string, len(c.Experiments))
	for i, e := range c.Experiments {
		names[i] = e.name
	}
	for _, an := range c.analyses {
		datasets := make([]DataSet, len(c.Experiments))
		for i, e := range c.Experiments {
			datasets[i] = an.analyzer(e.Result)
		}
		an.comparator(names, datasets)
	}
	return nil
}
