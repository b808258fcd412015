package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
	"github.com/llehouerou/voicenotes/internal/catalog"
	"github.com/llehouerou/voicenotes/internal/clip"
	"github.com/llehouerou/voicenotes/internal/config"
	"github.com/llehouerou/voicenotes/internal/errmsg"
	"github.com/llehouerou/voicenotes/internal/mpris"
	"github.com/llehouerou/voicenotes/internal/notify"
	"github.com/llehouerou/voicenotes/internal/playback"
	"github.com/llehouerou/voicenotes/internal/player"
	"github.com/llehouerou/voicenotes/internal/stderr"
	"github.com/llehouerou/voicenotes/internal/ui/board"
)

// noticeBuffer bounds pending stderr lines waiting for the UI.
const noticeBuffer = 32

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.GetLogLevel()})))

	// Audio backends write diagnostics to fd 2, which would corrupt the
	// alt screen. Route them to the log file and the status line instead.
	notices := make(chan string, noticeBuffer)
	if err := stderr.Start(func(line string) {
		slog.Warn("audio backend", "output", line)
		select {
		case notices <- line:
		default:
		}
	}); err != nil {
		slog.Warn("stderr capture unavailable", "error", err)
	}
	defer stderr.Stop()

	sink, err := player.NewSpeaker(beep.SampleRate(cfg.GetSampleRate()))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpAudioInit, err))
	}

	boardCfg := cfg.GetBoardConfig()
	ctx := context.Background()
	lister := audiofiles.Lister{
		Dir:        cfg.GetAudioDir(),
		Prefix:     cfg.GetURLPrefix(),
		Extensions: cfg.GetExtensions(),
	}
	refs := discover(ctx, cfg, lister)
	slog.Info("board starting", "clips", len(refs), "engine", cfg.GetEngine())

	resolver := &player.Resolver{
		BaseURL:  boardCfg.APIURL,
		AudioDir: lister.Dir,
		Prefix:   lister.Prefix,
		MaxBytes: cfg.GetMaxClipBytes(),
	}
	newEngine := func() player.Engine {
		if cfg.GetEngine() == config.EngineBuffer {
			return player.NewBuffered(sink, resolver)
		}
		return player.NewStreaming(sink, resolver)
	}

	b := playback.NewBoard(clip.NewList(refs), newEngine, playback.Options{
		Params:   cfg.GetEffectParams(),
		Interval: boardCfg.ProgressInterval,
	})
	defer b.Close()

	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, boardCfg.LoadTimeout)
		defer cancel()
		if err := b.LoadAll(loadCtx); err != nil {
			slog.Warn("board loaded with errors", "error", err)
		}
	}()

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(b)
		if err != nil {
			slog.Warn("mpris unavailable", "error", err)
		} else {
			defer adapter.Close()
		}
	}

	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			slog.Warn("notifications unavailable", "error", err)
		} else {
			go notify.Watch(b.Subscribe(), n, func(i int) string {
				if c := b.Controller(i); c != nil {
					return c.Clip().Title
				}
				return ""
			})
		}
	}

	p := tea.NewProgram(board.New(b, notices), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func openLog(cfg *config.Config) (*os.File, error) {
	path := cfg.Log.File
	if path == "" {
		var err error
		path, err = xdg.StateFile(filepath.Join("voicenotes", "voicenotes.log"))
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func discover(ctx context.Context, cfg *config.Config, lister audiofiles.Lister) []string {
	boardCfg := cfg.GetBoardConfig()
	var sources []catalog.Source
	if boardCfg.APIURL != "" {
		sources = append(sources, catalog.NewHTTPSource(boardCfg.APIURL))
	}
	sources = append(sources, catalog.DirSource{Lister: lister})

	ctx, cancel := context.WithTimeout(ctx, boardCfg.LoadTimeout)
	defer cancel()
	return catalog.Discover(ctx, cfg.DefaultFiles, sources...)
}
