// Command voicenotes-api serves the audio-files listing and the audio
// directory over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
	"github.com/llehouerou/voicenotes/internal/config"
	"github.com/llehouerou/voicenotes/internal/errmsg"
	"github.com/llehouerou/voicenotes/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.GetLogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lister := audiofiles.Lister{
		Dir:        cfg.GetAudioDir(),
		Prefix:     cfg.GetURLPrefix(),
		Extensions: cfg.GetExtensions(),
	}
	srvCfg := cfg.GetServerConfig()

	slog.Info("serving audio files", "addr", srvCfg.Addr, "dir", lister.Dir, "prefix", lister.Prefix)
	if err := server.Run(ctx, srvCfg.Addr, server.New(lister).Handler(), srvCfg.ShutdownTimeout); err != nil {
		slog.Error(errmsg.Format(errmsg.OpServe, err))
		stop()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
