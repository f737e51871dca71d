package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitwall/race-strategy-rl/rl"
)

type Config struct {
	Addr string
	// Model names the artifact in the store the server restores on start
	// and saves after training.
	Model string
	Store ArtifactStore
	// Seed fixes the agent's random source. 0 seeds from the clock.
	Seed uint64
}

// Server exposes the strategy agent over HTTP. One agent backs all
// endpoints; the lock serializes training against predictions.
type Server struct {
	config *Config
	engine *gin.Engine
	server *http.Server
	hub    *Hub

	lock  *sync.Mutex
	agent *rl.Agent
}

func New(config *Config) *Server {
	if config == nil {
		config = &Config{}
	}
	if config.Addr == "" {
		config.Addr = "localhost:8080"
	}
	if config.Model == "" {
		config.Model = "pit-strategy"
	}
	if config.Store == nil {
		config.Store = NewFileStore("models")
	}

	agentCfg := rl.DefaultAgentConfig()
	agentCfg.Seed = config.Seed
	s := &Server{
		config: config,
		hub:    NewHub(),
		lock:   new(sync.Mutex),
		agent:  rl.NewAgent(agentCfg),
	}

	if data, err := config.Store.Load(context.Background(), config.Model); err == nil {
		if err := s.agent.Decode(data); err != nil {
			fmt.Printf("Stored model %s is unusable: %v\n", config.Model, err)
		} else {
			fmt.Printf("Restored model %s: %d episodes\n", config.Model, s.agent.EpisodeCount())
		}
	} else {
		fmt.Println("No trained model found. Train one via POST /api/strategy/train.")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	api := r.Group("/api/strategy")
	api.POST("/train", s.handleTrain)
	api.POST("/predict", s.handlePredict)
	api.GET("/status", s.handleStatus)
	api.POST("/compare", s.handleCompare)
	api.GET("/live", s.handleLive)
	s.engine = r
	s.server = &http.Server{
		Addr:    config.Addr,
		Handler: r,
	}
	return s
}

// Handler exposes the route table, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()
	fmt.Printf("Strategy service listening on %s\n", s.config.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
