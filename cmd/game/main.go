package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/duel/internal/audio"
	"github.com/tomz197/duel/internal/config"
	"github.com/tomz197/duel/internal/logging"
	"github.com/tomz197/duel/internal/loop"
)

// defaultLogFile keeps logs off the game screen when the config names none.
const defaultLogFile = "duel.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, roster, err := config.FromEnv()
	if err != nil {
		return err
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogFile
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var sink audio.Sink = audio.Nop{}
	if cfg.Audio.Enabled {
		spk, err := audio.NewSpeaker(cfg.Audio)
		if err != nil {
			logger.Warn("audio disabled", zap.Error(err))
		} else {
			defer spk.Close()
			sink = spk
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("starting local duel",
		zap.Int("tick_rate", cfg.Loop.TickRate),
		zap.Int("archetypes", len(roster.Archetypes)))

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, loop.RunOptions{
		Config: cfg,
		Roster: roster,
		Audio:  sink,
		Logger: logger,
	})
}
