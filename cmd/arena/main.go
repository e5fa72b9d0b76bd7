package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AgentService/vibe-arena/internal/config"
	"github.com/AgentService/vibe-arena/internal/data"
	"github.com/AgentService/vibe-arena/internal/render"
	"github.com/AgentService/vibe-arena/internal/scripting"
	"github.com/AgentService/vibe-arena/internal/sim"
	"github.com/AgentService/vibe-arena/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           vibe-arena  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      survival-arena combat core           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/arena.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load data tables — invalid templates are fatal here, never at
	// runtime.
	printSection("data")

	archetypes, err := data.LoadArchetypeTable("data/archetypes.yaml")
	if err != nil {
		return fmt.Errorf("load archetypes: %w", err)
	}
	printStat("archetypes", archetypes.Count())

	waves, err := data.LoadWaveTable("data/waves.yaml")
	if err != nil {
		return fmt.Errorf("load waves: %w", err)
	}
	printStat("authored waves", waves.Count())

	// 4. Optional Lua balance hooks
	var balance system.Balance
	luaEngine, err := scripting.NewEngine("scripts", log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	balance = luaEngine
	printOK("balance scripts loaded")
	fmt.Println()

	// 5. Build the simulation
	s := sim.New(cfg, archetypes, waves, balance, log)
	classifier := render.NewTierClassifier(cfg.Tiers.Thresholds)

	// 6. Fixed-step loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate.Std())
	defer ticker.Stop()

	printSection("simulation ready")
	printReady(fmt.Sprintf("pool capacity %d", cfg.Pool.Capacity))
	printReady(fmt.Sprintf("fixed step %s", cfg.Sim.TickRate.Std()))
	fmt.Println()

	const statusInterval = 150 // ticks between status logs
	statusCounter := 0

	for {
		select {
		case <-ticker.C:
			s.Tick()

			statusCounter++
			if statusCounter >= statusInterval {
				statusCounter = 0
				snap := s.Snapshot()
				batches := classifier.Classify(snap)
				fields := []zap.Field{
					zap.Int("wave", s.Director.Wave()),
					zap.Int("alive", s.State.Store.AliveCount()),
					zap.Int("projectiles", s.Projectiles.LiveCount()),
				}
				for tier, b := range batches {
					fields = append(fields, zap.Int(fmt.Sprintf("tier_%d", tier), len(b.Transforms)))
				}
				log.Info("status", fields...)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
