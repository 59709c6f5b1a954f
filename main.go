package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tlacroix/aria/internal/app"
	"github.com/tlacroix/aria/internal/config"
	"github.com/tlacroix/aria/internal/controller"
	"github.com/tlacroix/aria/internal/device"
	"github.com/tlacroix/aria/internal/errmsg"
	"github.com/tlacroix/aria/internal/icons"
	"github.com/tlacroix/aria/internal/library"
	"github.com/tlacroix/aria/internal/mpris"
	"github.com/tlacroix/aria/internal/pipeline"
	"github.com/tlacroix/aria/internal/playback"
	"github.com/tlacroix/aria/internal/stderr"
)

func main() {
	// Capture fd 2 before ALSA gets a chance to write to it; raw C
	// library output would corrupt the TUI.
	if err := stderr.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stderr capture unavailable: %v\n", err)
	}
	defer stderr.Stop()

	if err := run(); err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	icons.Init(cfg.UI.Icons)

	// ALSA noise goes to the log instead of the terminal.
	go func() {
		for msg := range stderr.Messages {
			logger.Warn().Msgf("alsa: %s", msg)
		}
	}()

	catalog, err := device.NewSystemCatalog()
	if err != nil {
		return err
	}

	deviceID := cfg.Device.ID
	if deviceID == "" {
		devices := catalog.Devices()
		if len(devices) == 0 {
			return fmt.Errorf("no output devices available")
		}
		deviceID = devices[0].ID
	}

	pipe, err := pipeline.New(pipeline.Config{
		Catalog:      catalog,
		DeviceID:     deviceID,
		BufferFrames: cfg.Playback.BufferFrames,
	})
	if err != nil {
		return err
	}

	eng := playback.NewEngine(pipe, cfg.Playback.PositionInterval())

	ctl, err := controller.New(controller.Config{
		Engine:        eng,
		Logger:        logger,
		RetryAttempts: cfg.Playback.RetryAttempts,
		RetryDelay:    cfg.Playback.RetryDelay(),
	})
	if err != nil {
		return err
	}
	defer ctl.Close()

	libPath, err := library.DefaultPath()
	if err != nil {
		return err
	}
	lib, err := library.Open(libPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	adapter, err := mpris.New(ctl)
	if err != nil {
		// Not fatal: playback works without the D-Bus bridge.
		logger.Warn().Msgf("mpris: unavailable: %v", err)
	} else {
		defer adapter.Close()
	}

	logger.Info().Msgf("aria: starting: device=%s sources=%d", deviceID, len(cfg.LibrarySources))

	p := tea.NewProgram(app.New(cfg, ctl, lib, logger), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func setupLogger(level string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	path, err := xdg.StateFile(filepath.Join("aria", "aria.log"))
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}
