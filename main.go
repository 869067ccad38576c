package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/hero-trails/internal/config"
	"github.com/iburimskiy/hero-trails/internal/game"
)

func main() {
	configPath := flag.String("config", "hero.yaml", "path to the settings file")
	debug := flag.Bool("debug", false, "enable debug logging and the status line")
	width := flag.Int("width", config.WindowWidth, "initial window width")
	height := flag.Int("height", config.WindowHeight, "initial window height")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	settings, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Error loading settings", slog.String("path", *configPath), slog.Any("error", err))
		os.Exit(1)
	}

	g, err := game.New(game.Options{
		Settings: settings,
		Logger:   logger,
		Debug:    *debug,
	})
	if err != nil {
		logger.Error("Error creating hero", slog.Any("error", err))
		os.Exit(1)
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Audit Agent - Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("Starting hero", slog.String("background", string(settings.Background)))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("Error running hero", slog.Any("error", err))
		os.Exit(1)
	}
}
