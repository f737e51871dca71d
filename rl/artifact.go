package rl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact is the persisted form of a trained agent: the value table, the
// hyperparameters and the training statistics.
type Artifact struct {
	Table            map[StateKey][NumActions]float64 `json:"value_table"`
	LearningRate     float64                          `json:"learning_rate"`
	DiscountFactor   float64                          `json:"discount_factor"`
	Exploration      float64                          `json:"exploration_rate"`
	ExplorationDecay float64                          `json:"exploration_decay"`
	ExplorationFloor float64                          `json:"exploration_floor"`
	TrainingRewards  []float64                        `json:"training_rewards"`
	TrainingTimes    []float64                        `json:"training_times"`
	EpisodeCount     int                              `json:"episode_count"`
	SavedAt          time.Time                        `json:"saved_at"`
}

// Encode serializes the agent into one artifact blob.
func (a *Agent) Encode() ([]byte, error) {
	art := &Artifact{
		Table:            a.table.Snapshot(),
		LearningRate:     a.learningRate,
		DiscountFactor:   a.discountFactor,
		Exploration:      a.exploration,
		ExplorationDecay: a.explorationDecay,
		ExplorationFloor: a.explorationFloor,
		TrainingRewards:  a.trainingRewards,
		TrainingTimes:    a.trainingTimes,
		EpisodeCount:     a.episodeCount,
		SavedAt:          time.Now(),
	}
	data, err := json.Marshal(art)
	if err != nil {
		return nil, fmt.Errorf("encode agent: %w", err)
	}
	return data, nil
}

// Decode restores the agent from an artifact blob. On any error the agent
// keeps its previous state.
func (a *Agent) Decode(data []byte) error {
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}
	if art.LearningRate <= 0 || art.DiscountFactor <= 0 {
		return fmt.Errorf("decode artifact: missing hyperparameters")
	}
	a.table = NewQTableFrom(art.Table)
	a.learningRate = art.LearningRate
	a.discountFactor = art.DiscountFactor
	a.exploration = art.Exploration
	if art.ExplorationDecay > 0 {
		a.explorationDecay = art.ExplorationDecay
	}
	a.explorationFloor = art.ExplorationFloor
	a.trainingRewards = art.TrainingRewards
	if a.trainingRewards == nil {
		a.trainingRewards = make([]float64, 0)
	}
	a.trainingTimes = art.TrainingTimes
	if a.trainingTimes == nil {
		a.trainingTimes = make([]float64, 0)
	}
	a.episodeCount = art.EpisodeCount
	return nil
}

// Save writes the agent artifact to path as a single file, replacing it
// atomically when one already exists.
func (a *Agent) Save(path string) error {
	data, err := a.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create artifact dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// Load reads an artifact written by Save. A failed load leaves the agent
// unchanged and usable.
func (a *Agent) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	return a.Decode(data)
}
