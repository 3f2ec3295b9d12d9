package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/simulation"
)

const (
	defaultConfigPath = "configs/swarm.json"
	envConfigPath     = "DRONESWARM_CONFIG"
	envLogLevel       = "DRONESWARM_LOG_LEVEL"
)

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if raw := os.Getenv(envLogLevel); raw != "" {
		level, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envLogLevel, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}

func main() {
	logger, err := newLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	path := os.Getenv(envConfigPath)
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := simulation.LoadConfig(path)
	if err != nil {
		logger.Fatal("cannot load config", zap.String("path", path), zap.Error(err))
	}

	engine, err := simulation.NewEngine(cfg, simulation.WithLogger(logger.Named("engine")))
	if err != nil {
		logger.Fatal("cannot start swarm", zap.Error(err))
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Drone Swarm")
	if err := ebiten.RunGame(newGame(engine, logger)); err != nil {
		logger.Fatal("game stopped", zap.Error(err))
	}
}
