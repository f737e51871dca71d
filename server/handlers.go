package server

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitwall/race-strategy-rl/race"
	"github.com/pitwall/race-strategy-rl/rl"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type TrainRequest struct {
	Episodes int      `json:"episodes"`
	Drivers  []string `json:"drivers"`
	Tracks   []string `json:"tracks"`
	Seed     uint64   `json:"seed"`
}

type RaceConditions struct {
	Weather          string  `json:"weather"`
	TrackTemp        float64 `json:"track_temp"`
	StartingPosition *int    `json:"starting_position"`
}

type PredictRequest struct {
	Driver     string          `json:"driver"`
	Track      string          `json:"track"`
	Conditions *RaceConditions `json:"race_conditions"`
}

type TraditionalStrategy struct {
	Name     string `json:"name"`
	PitLap   int    `json:"pit_lap"`
	Compound string `json:"compound"`
}

type CompareRequest struct {
	Driver     string                `json:"driver"`
	Track      string                `json:"track"`
	Strategies []TraditionalStrategy `json:"traditional_strategies"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// strategyQuality grades a predicted race against reference two-stop pace.
func strategyQuality(totalTime float64) string {
	switch {
	case totalTime > 6000:
		return "Poor"
	case totalTime > 5400:
		return "Average"
	case totalTime > 5000:
		return "Good"
	default:
		return "Excellent"
	}
}

func (s *Server) confidence() string {
	if s.agent.EpisodeCount() > 500 {
		return "High"
	}
	return "Medium"
}

// bindJSON decodes the request body into v, tolerating an empty body so
// every field can default.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return false
	}
	return true
}

func (s *Server) newEnv(trackTemp float64, position *int) *race.Environment {
	cfg := &race.Config{
		TrackTemp: trackTemp,
		Oracle:    race.CurveOracle{},
		Seed:      s.config.Seed,
	}
	if position != nil {
		p := *position
		if p < 1 {
			p = 1
		} else if p > 20 {
			p = 20
		}
		cfg.StartMin = p
		cfg.StartMax = p
	}
	return race.NewEnvironment(cfg)
}

func (s *Server) handleTrain(c *gin.Context) {
	var req TrainRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Episodes <= 0 {
		req.Episodes = 500
	}
	if len(req.Drivers) == 0 {
		req.Drivers = []string{"HAM", "VER", "LEC", "NOR", "RUS"}
	}
	if len(req.Tracks) == 0 {
		req.Tracks = []string{"Silverstone", "Monaco", "Spain", "Italy"}
	}

	if req.Seed == 0 {
		req.Seed = s.config.Seed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	trainer := rl.NewTrainer(&rl.TrainerConfig{
		Episodes: req.Episodes,
		Drivers:  req.Drivers,
		Tracks:   req.Tracks,
		Quiet:    true,
		OnEpisode: func(stats rl.EpisodeStats) {
			s.hub.Broadcast(stats)
		},
		Seed: req.Seed,
	}, s.agent, s.newEnv(0, nil))

	best, err := trainer.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := s.agent.Encode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.config.Store.Save(c.Request.Context(), s.config.Model, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "success",
		"message":            fmt.Sprintf("agent trained successfully for %d episodes", req.Episodes),
		"episodes_completed": s.agent.EpisodeCount(),
		"best_race_time":     round1(best.TotalTime),
		"best_pit_stops":     best.PitStops,
		"training_drivers":   req.Drivers,
		"training_tracks":    req.Tracks,
		"timestamp":          time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handlePredict(c *gin.Context) {
	var req PredictRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Driver == "" {
		req.Driver = "HAM"
	}
	if req.Track == "" {
		req.Track = "Silverstone"
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.agent.EpisodeCount() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "agent not trained yet. Use /api/strategy/train first.",
		})
		return
	}

	trackTemp := float64(0)
	var position *int
	if req.Conditions != nil {
		trackTemp = req.Conditions.TrackTemp
		position = req.Conditions.StartingPosition
	}
	env := s.newEnv(trackTemp, position)

	schedule, summary, err := s.agent.PredictStrategy(env, req.Driver, req.Track)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recommendations := make([]gin.H, 0, len(schedule))
	for _, pit := range schedule {
		recommendations = append(recommendations, gin.H{
			"lap":            pit.Lap,
			"recommendation": "Pit for " + pit.Compound + " tires",
			"reasoning":      "Optimal timing based on tire degradation and track position",
		})
	}

	var conditions interface{} = gin.H{}
	if req.Conditions != nil {
		conditions = req.Conditions
	}

	c.JSON(http.StatusOK, gin.H{
		"driver":             req.Driver,
		"track":              req.Track,
		"conditions":         conditions,
		"predicted_strategy": schedule,
		"race_summary": gin.H{
			"total_race_time":  round1(summary.TotalTime),
			"total_pit_stops":  summary.PitStops,
			"final_position":   summary.FinalPosition,
			"average_lap_time": round2(summary.AvgLapTime),
			"strategy_quality": strategyQuality(summary.TotalTime),
		},
		"pit_recommendations": recommendations,
		"model_confidence":    s.confidence(),
		"timestamp":           time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rewards := s.agent.TrainingRewards()
	times := s.agent.TrainingTimes()

	progress := gin.H{
		"recent_avg_reward": 0.0,
		"best_race_time":    nil,
		"recent_avg_time":   nil,
	}
	if len(rewards) > 0 {
		progress["recent_avg_reward"] = round2(stat.Mean(lastN(rewards, 100), nil))
	}
	if len(times) > 0 {
		progress["best_race_time"] = round1(floats.Min(times))
		progress["recent_avg_time"] = round1(stat.Mean(lastN(times, 100), nil))
	}

	envCfg := race.DefaultConfig()
	compounds := make([]string, 0, len(race.Compounds))
	for _, compound := range race.Compounds {
		compounds = append(compounds, compound.String())
	}

	c.JSON(http.StatusOK, gin.H{
		"model_trained":      s.agent.EpisodeCount() > 0,
		"episodes_completed": s.agent.EpisodeCount(),
		"current_epsilon":    round3(s.agent.Exploration()),
		"training_progress":  progress,
		"agent_parameters": gin.H{
			"learning_rate":    s.agent.LearningRate(),
			"discount_factor":  s.agent.DiscountFactor(),
			"exploration_rate": round3(s.agent.Exploration()),
		},
		"environment_info": gin.H{
			"race_length":    envCfg.TotalLaps,
			"pit_stop_time":  envCfg.PitStopTime,
			"tire_compounds": compounds,
		},
		"model_type": "Tabular Q-Learning",
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Driver == "" {
		req.Driver = "HAM"
	}
	if req.Track == "" {
		req.Track = "Silverstone"
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.agent.EpisodeCount() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "agent not trained yet. Use /api/strategy/train first.",
		})
		return
	}

	schedule, summary, err := s.agent.PredictStrategy(s.newEnv(0, nil), req.Driver, req.Track)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	oracle := race.CurveOracle{}
	laps := race.DefaultConfig().TotalLaps
	traditional := make([]gin.H, 0, len(req.Strategies))
	bestTraditional := math.Inf(1)
	for _, strategy := range req.Strategies {
		if strategy.PitLap <= 0 {
			continue
		}
		compound := race.ParseCompound(strategy.Compound)
		stint1 := oracle.PredictDegradation(strategy.PitLap, compound, req.Driver, req.Track,
			35, strategy.PitLap/2, 80)
		stint2 := oracle.PredictDegradation(laps-strategy.PitLap, compound, req.Driver, req.Track,
			35, strategy.PitLap+(laps-strategy.PitLap)/2, 40)
		estimated := round1(85.0*float64(laps) + stint1 + stint2 + 24.0)

		if estimated < bestTraditional {
			bestTraditional = estimated
		}
		traditional = append(traditional, gin.H{
			"name":                 strategy.Name,
			"estimated_total_time": estimated,
			"pit_lap":              strategy.PitLap,
			"compound":             strategy.Compound,
			"methodology":          "Traditional tire degradation model",
		})
	}

	winner := "RL Strategy"
	timeDifference := float64(0)
	if len(traditional) > 0 {
		if summary.TotalTime >= bestTraditional {
			winner = "Traditional Strategy"
		}
		timeDifference = round1(bestTraditional - summary.TotalTime)
	}

	c.JSON(http.StatusOK, gin.H{
		"comparison_summary": gin.H{
			"driver": req.Driver,
			"track":  req.Track,
			"rl_strategy": gin.H{
				"total_time":   round1(summary.TotalTime),
				"pit_stops":    summary.PitStops,
				"pit_schedule": schedule,
				"methodology":  "Reinforcement Learning (Q-Learning)",
			},
			"traditional_strategies": traditional,
			"winner":                 winner,
			"time_difference":        timeDifference,
		},
		"analysis": gin.H{
			"rl_advantages": []string{
				"Learns from thousands of race simulations",
				"Adapts to dynamic race conditions",
				"Considers track position and traffic",
				"Optimizes for total race time, not just tire life",
			},
			"traditional_advantages": []string{
				"Based on proven tire degradation models",
				"More predictable and interpretable",
				"Does not require extensive training",
				"Easier to understand reasoning",
			},
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func lastN(vals []float64, n int) []float64 {
	if len(vals) > n {
		return vals[len(vals)-n:]
	}
	return vals
}
