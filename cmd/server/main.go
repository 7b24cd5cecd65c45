package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/engine"
	"rotten-soup/internal/infrastructure/storage"
	"rotten-soup/internal/network"
	"rotten-soup/internal/render"
	"rotten-soup/internal/server"
	"rotten-soup/internal/telemetry"
	"rotten-soup/internal/version"
	"rotten-soup/pkg/dungeon"
	"rotten-soup/pkg/logger"
)

const inputBuffer = 32

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed    int64
		port    int
		tui     bool
		logPath string

		recordDir  string
		replayPath string
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (default: RS_SEED or random)")
	flag.IntVar(&port, "port", 0, "HTTP port (0 - from RS_PORT)")
	flag.BoolVar(&tui, "tui", false, "Play in this terminal in addition to the websocket server")
	flag.StringVar(&logPath, "log", "rotten-soup.log", "Log file for terminal mode")
	flag.StringVar(&recordDir, "record", "", "Directory to save a replay of this game on exit")
	flag.StringVar(&replayPath, "replay", "", "Path to .rsrp replay file to simulate")
	flag.Parse()

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}
	// -seed=0 тоже явное значение
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seed = seed
		}
	})
	if port != 0 {
		cfg.Port = port
	}

	// В терминальном режиме логи не должны рисоваться поверх экрана
	if tui {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to open log file")
		}
		defer f.Close()
		logger.Configure(logger.Log.GetLevel().String(), os.Getenv("LOG_FORMAT"), f)
	}

	logger.Log.Info("Starting Rotten Soup...")
	logger.Log.Info(version.String())
	logger.Log.Infof("Using master seed: %d", cfg.Seed)

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		if err := runReplay(replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Log.WithError(err).Warn("Telemetry disabled")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Log.WithError(err).Warn("Telemetry shutdown failed")
				}
			}()
		}
	}

	// 2. Сборка мира
	catalog, err := dungeon.LoadCatalog()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load catalog")
	}
	ids := types.NewIDAllocator(uint16(cfg.Seed))

	hub := network.NewBroadcaster()
	frames := network.NewFrameSink(hub)
	sink := engine.MultiSink{frames}

	var term *render.Terminal
	if tui {
		term, err = render.OpenTerminal()
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to open terminal")
		}
		sink = append(sink, term)
	}

	input := engine.NewChanInput(inputBuffer)
	var source engine.InputSource = input
	var recorder *storage.RecordingInput
	if recordDir != "" {
		recorder = storage.NewRecordingInput(input, cfg.Seed, cfg.StartLevel)
		source = recorder
	}

	session, err := engine.NewSession(cfg, engine.Deps{
		Generator: dungeon.NewGenerator(catalog, ids),
		Loot:      dungeon.NewLoot(catalog, ids, cfg.Seed),
		IDs:       ids,
		Sink:      sink,
		Input:     source,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create session")
	}
	if err := session.Init(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Failed to init session")
	}

	// 3. Запуск сервера и ввода
	srv := server.New(session, hub, frames, input, strconv.Itoa(cfg.Port))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx); err != nil {
			logger.Log.WithError(err).Error("Server stopped")
			stop()
		}
	}()

	if term != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			term.Listen(ctx, input)
		}()
	}

	// 4. Игровой цикл в главной горутине
	if err := session.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Game loop stopped")
	}

	logger.Log.Info("Shutting down...")
	stop()
	if term != nil {
		term.Close()
	}
	if err := session.Close(); err != nil {
		logger.Log.WithError(err).Warn("Session close failed")
	}
	wg.Wait()

	if recorder != nil {
		saveReplay(recordDir, recorder.Recording())
	}

	logger.Log.Info("Done.")
}

func saveReplay(dir string, rec *storage.Recording) {
	svc, err := storage.NewReplayService(dir)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to prepare replay dir")
		return
	}
	path, err := svc.Save(rec)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save replay")
		return
	}
	logger.Log.WithField("commands", len(rec.Commands)).Infof("Replay saved to %s", path)
}

// runReplay проигрывает записанную партию без сети и терминала
func runReplay(path string) error {
	svc := &storage.ReplayService{}
	rec, err := svc.Load(path)
	if err != nil {
		return fmt.Errorf("load replay: %w", err)
	}

	cfg := engine.NewConfig()
	cfg.Seed = rec.Seed
	cfg.StartLevel = rec.StartLevel

	catalog, err := dungeon.LoadCatalog()
	if err != nil {
		return err
	}
	ids := types.NewIDAllocator(uint16(cfg.Seed))

	session, err := engine.NewSession(cfg, engine.Deps{
		Generator: dungeon.NewGenerator(catalog, ids),
		Loot:      dungeon.NewLoot(catalog, ids, cfg.Seed),
		IDs:       ids,
		Input:     storage.NewReplayInput(rec),
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := session.Init(ctx); err != nil {
		return err
	}
	if err := session.Run(ctx); err != nil {
		return err
	}
	_ = session.Close()

	sum := session.Summary()
	logger.Log.WithFields(logrus.Fields{
		"seed":     rec.Seed,
		"commands": len(rec.Commands),
		"turn":     sum.Turn,
		"level":    sum.Active,
		"player":   sum.Player,
	}).Info("Replay finished")
	return nil
}
