// Package catalog discovers which clips the board should show.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
)

// DefaultFile is the clip shown when nothing else is available.
const DefaultFile = "https://res.cloudinary.com/dprjkfgqf/video/upload/f_mp3,br_128k/v1755302946/megl-accussi_km8uea.wav"

// Source lists audio file references.
type Source interface {
	Files(ctx context.Context) ([]string, error)
}

// HTTPSource queries a running audio-files API.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates a source for the API at baseURL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type filesResponse struct {
	Files []string `json:"files"`
}

// Files fetches GET <BaseURL>/api/audio-files.
func (s *HTTPSource) Files(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/audio-files", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result filesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Files, nil
}

// DirSource lists a local directory.
type DirSource struct {
	Lister audiofiles.Lister
}

// Files lists the directory.
func (s DirSource) Files(context.Context) ([]string, error) {
	return s.Lister.List()
}

// Discover returns the first non-empty listing from sources, tried in order.
// When every source fails or is empty it returns defaults, or DefaultFile
// when defaults is empty. It never returns an empty list.
func Discover(ctx context.Context, defaults []string, sources ...Source) []string {
	for _, src := range sources {
		files, err := src.Files(ctx)
		if err != nil {
			slog.Warn("audio file discovery failed", "source", fmt.Sprintf("%T", src), "error", err)
			continue
		}
		if len(files) > 0 {
			slog.Debug("discovered audio files", "count", len(files))
			return files
		}
	}
	if len(defaults) > 0 {
		return defaults
	}
	return []string{DefaultFile}
}
