package commands

import (
	"os"
	"path/filepath"

	"github.com/pitwall/race-strategy-rl/rl"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// OuterConfig is the envelope of a config file: a kind tag and the config
// body, so one file format can grow other config kinds later.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// TrainingConfig holds everything a training run can override without
// recompiling: the episode pools and the agent hyperparameters.
type TrainingConfig struct {
	Episodes int      `mapstructure:"episodes" yaml:"episodes"`
	Drivers  []string `mapstructure:"drivers" yaml:"drivers"`
	Tracks   []string `mapstructure:"tracks" yaml:"tracks"`
	Mode     string   `mapstructure:"mode" yaml:"mode"`
	// HyperParams is a key-val pair of param names and their value. The
	// yaml key is lowercase because viper lowercases keys before the
	// typed round trip.
	HyperParams []HyperParameter `mapstructure:"hyperParams" yaml:"hyperparams"`
}

type HyperParameter struct {
	Key string  `mapstructure:"key" yaml:"key"`
	Val float64 `mapstructure:"val" yaml:"val"`
}

func (cfg *TrainingConfig) GetHyperParamOrDefault(param string, defaultVal float64) float64 {
	for _, kvp := range cfg.HyperParams {
		if kvp.Key == param {
			return kvp.Val
		}
	}
	return defaultVal
}

// AgentConfig folds the file's hyperparameters over the built-in defaults.
func (cfg *TrainingConfig) AgentConfig(seed uint64) *rl.AgentConfig {
	base := rl.DefaultAgentConfig()
	base.LearningRate = cfg.GetHyperParamOrDefault("learningRate", base.LearningRate)
	base.DiscountFactor = cfg.GetHyperParamOrDefault("discountFactor", base.DiscountFactor)
	base.Exploration = cfg.GetHyperParamOrDefault("exploration", base.Exploration)
	base.ExplorationDecay = cfg.GetHyperParamOrDefault("explorationDecay", base.ExplorationDecay)
	base.ExplorationFloor = cfg.GetHyperParamOrDefault("explorationFloor", base.ExplorationFloor)
	base.Temperature = cfg.GetHyperParamOrDefault("temperature", base.Temperature)
	if cfg.Mode != "" {
		base.Mode = rl.ExplorationMode(cfg.Mode)
	}
	base.Seed = seed
	return base
}

func FromYaml(path string) (*TrainingConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outerConfig := &OuterConfig{}
	if err := vp.Unmarshal(outerConfig); err != nil {
		return nil, err
	}

	// Round-trip the untyped body through yaml to type it.
	body, err := yaml.Marshal(outerConfig.Def)
	if err != nil {
		return nil, err
	}
	innerConfig := &TrainingConfig{}
	if err := yaml.Unmarshal(body, innerConfig); err != nil {
		return nil, err
	}
	return innerConfig, nil
}

// loadConfig returns the file-backed config when --config was given and a
// config synthesized from the flags otherwise.
func loadConfig() (*TrainingConfig, error) {
	if configPath == "" {
		return &TrainingConfig{Episodes: episodes}, nil
	}
	cfg, err := FromYaml(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Episodes == 0 {
		cfg.Episodes = episodes
	}
	return cfg, nil
}

// dumpConfig records the effective configuration next to the run's results.
func dumpConfig(cfg *TrainingConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(saveDir, "training_config.yaml"), data, 0644)
}
