// Command ecs-stress runs a generated workload against the ECS and prints a
// markdown performance report. The component and system corpus in generated.go
// is produced by cmd/weft-gen; regenerate it to change the workload shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/weft/ecs"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	duration := flag.Duration("duration", 0, "Total run duration (overrides config).")
	entityCount := flag.Int("entities", 0, "Initial number of entities (overrides config).")
	workers := flag.Int("workers", -1, "Worker goroutines per wave, 0 for one per CPU (overrides config).")
	profileMode := flag.String("profile", "", "Enable profiling: cpu, mem, or trace.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *duration > 0 {
		cfg.Run.Duration = *duration
	}
	if *entityCount > 0 {
		cfg.Run.Entities = *entityCount
	}
	if *workers >= 0 {
		cfg.Run.Workers = *workers
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		logger.Fatal("unknown profile mode", zap.String("mode", *profileMode))
	}

	logger.Info("starting stress test",
		zap.Duration("duration", cfg.Run.Duration),
		zap.Int("entities", cfg.Run.Entities),
		zap.Int("workers", cfg.Run.Workers),
		zap.Int64("seed", cfg.Run.Seed))

	w := ecs.NewWorld()
	RegisterAllGeneratedComponents(w)

	scheduler := ecs.NewScheduler(w,
		ecs.WithLogger(logger),
		ecs.WithWorkers(cfg.Run.Workers))
	RegisterAllGeneratedSystems(scheduler)
	if err := scheduler.Compile(); err != nil {
		logger.Fatal("schedule compilation failed", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(cfg.Run.Seed))
	logger.Info("populating world", zap.Int("entities", cfg.Run.Entities))
	for i := 0; i < cfg.Run.Entities; i++ {
		// 1 to 5 random components per entity.
		SpawnRandomEntity(w, rng, rng.Intn(5)+1)
	}

	report := &Report{
		Duration:       cfg.Run.Duration,
		Entities:       cfg.Run.Entities,
		Components:     generatedComponentCount,
		Systems:        generatedSystemCount,
		Workers:        cfg.Run.Workers,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Run.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(deltaTime.Seconds()); err != nil {
				logger.Fatal("pass failed", zap.Error(err))
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Waves = scheduler.Waves()
	report.SystemStats = scheduler.Stats().Systems
	report.WorldStats = w.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("updates", totalUpdates),
		zap.Duration("elapsed", report.TotalTime))

	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("report generation failed", zap.Error(err))
	}
}
