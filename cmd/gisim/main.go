package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gisim/gisim-go/internal/config"
	"github.com/gisim/gisim-go/internal/game/catalogue"
	"github.com/gisim/gisim-go/internal/game/dispatch"
	"github.com/gisim/gisim-go/internal/game/rules"
	"github.com/gisim/gisim-go/internal/game/summon"
	"github.com/gisim/gisim-go/internal/game/watchers"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "", "path to configuration file (defaults apply when empty)")
	p1Summons  = flag.String("p1", "Oz,Guoba", "comma-separated summons for player one")
	p2Summons  = flag.String("p2", "Cuilein-Anbar", "comma-separated summons for player two")
	rounds     = flag.Int("rounds", 2, "number of rounds to play out")
	trigger    = flag.Bool("trigger", false, "fire a non-consuming summon trigger before each round end")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting gisim",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	cat, err := loadCatalogue(cfg.Catalogue)
	if err != nil {
		return err
	}
	logger.Info("catalogue loaded", zap.Strings("summons", cat.Names()))

	first, err := cfg.Dispatch.FirstPlayerID()
	if err != nil {
		return err
	}
	board := summon.NewBoard(first, cfg.Board.ZoneCapacity, logger)
	if err := populate(board, cat, rules.PlayerOne, *p1Summons); err != nil {
		return err
	}
	if err := populate(board, cat, rules.PlayerTwo, *p2Summons); err != nil {
		return err
	}

	registry := rules.NewWatcherRegistry()
	damage := watchers.NewDamageWatcher()
	roundEnds := watchers.NewRoundEndWatcher()
	registry.AddWatcher(damage)
	registry.AddWatcher(roundEnds)

	opts := []dispatch.Option{
		dispatch.WithMaxSteps(cfg.Dispatch.MaxSteps),
		dispatch.WithWatchers(registry),
	}
	var journal *dispatch.Journal
	if cfg.Journal.Enabled {
		journal = dispatch.NewJournal(uuid.NewString())
		opts = append(opts, dispatch.WithJournal(journal))
	}
	dispatcher := dispatch.NewDispatcher(board, logger, opts...)

	q := rules.NewMessageQueue()
	for round := 1; round <= *rounds; round++ {
		if *trigger {
			q.Push(rules.NewTriggerSummonEffectMsg(first, false))
		}
		q.Push(rules.NewRoundEndMsg(first, round))

		res, err := dispatcher.Run(ctx, q)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		logger.Info("round resolved",
			zap.Int("round", round),
			zap.Int("retired", res.Retired),
			zap.Int("reactions", res.Reactions),
			zap.Int("player1_summons", board.Zone(rules.PlayerOne).Len()),
			zap.Int("player2_summons", board.Zone(rules.PlayerTwo).Len()),
		)
	}

	logger.Info("simulation complete",
		zap.Int("rounds", roundEnds.GetCount()),
		zap.Int("damage_to_player1", damage.GetReceived(rules.PlayerOne)),
		zap.Int("damage_to_player2", damage.GetReceived(rules.PlayerTwo)),
	)

	if journal != nil {
		sum, err := journal.Checksum()
		if err != nil {
			return err
		}
		path, err := journal.SaveToFile(cfg.Journal.Directory)
		if err != nil {
			return err
		}
		logger.Info("journal saved",
			zap.String("path", path),
			zap.Int("frames", journal.Size()),
			zap.String("checksum", sum.Hash),
		)
	}
	return nil
}

func loadCatalogue(cfg config.CatalogueConfig) (*catalogue.Catalogue, error) {
	if cfg.Path == "" {
		return catalogue.Default()
	}
	return catalogue.Load(cfg.Path)
}

func populate(board *summon.Board, cat *catalogue.Catalogue, player rules.PlayerID, names string) error {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, err := cat.Spawn(name, player)
		if err != nil {
			return err
		}
		if err := board.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
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
