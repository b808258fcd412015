package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
)

// Server serves the audio-files listing and the files themselves.
type Server struct {
	lister audiofiles.Lister
	mux    *http.ServeMux
}

// New creates a server for the files lister lists.
func New(lister audiofiles.Lister) *Server {
	s := &Server{lister: lister, mux: http.NewServeMux()}
	prefix := "/" + strings.Trim(lister.Prefix, "/")
	if prefix == "/" {
		prefix = audiofiles.DefaultPrefix
	}

	s.mux.HandleFunc("GET /api/audio-files", s.handleAudioFiles)
	s.mux.Handle("GET "+prefix+"/", http.StripPrefix(prefix, http.FileServer(audioFS{dir: http.Dir(lister.Dir), exts: lister.Extensions})))
	return s
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

type filesResponse struct {
	Files []string `json:"files"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAudioFiles(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	files, err := s.lister.List()
	if err != nil {
		slog.Error("list audio files", "dir", s.lister.Dir, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to read audio files"})
		return
	}
	writeJSON(w, http.StatusOK, filesResponse{Files: files})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response", "error", err)
	}
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h, shutdownTimeout)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
