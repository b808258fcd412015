package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
)

type staticSource struct {
	files []string
	err   error
}

func (s staticSource) Files(context.Context) ([]string, error) { return s.files, s.err }

func TestHTTPSource_Files(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/audio-files", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files":["/audio/a.mp3","/audio/c.wav"]}`))
	}))
	defer srv.Close()

	files, err := NewHTTPSource(srv.URL + "/").Files(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"/audio/a.mp3", "/audio/c.wav"}, files)
}

func TestHTTPSource_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to read audio files"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Files(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPSource_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Files(context.Background())

	assert.ErrorContains(t, err, "decode response")
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.m4a"), nil, 0o600))

	files, err := DirSource{Lister: audiofiles.New(dir)}.Files(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"/audio/a.m4a"}, files)
}

func TestDiscover(t *testing.T) {
	failing := staticSource{err: errors.New("connection refused")}
	empty := staticSource{files: []string{}}
	found := staticSource{files: []string{"/audio/x.mp3"}}

	tests := []struct {
		name     string
		defaults []string
		sources  []Source
		want     []string
	}{
		{"first source wins", nil, []Source{found, staticSource{files: []string{"/audio/y.mp3"}}}, []string{"/audio/x.mp3"}},
		{"skips failing source", nil, []Source{failing, found}, []string{"/audio/x.mp3"}},
		{"skips empty source", nil, []Source{empty, found}, []string{"/audio/x.mp3"}},
		{"configured defaults", []string{"/audio/d.mp3"}, []Source{failing, empty}, []string{"/audio/d.mp3"}},
		{"built-in default", nil, []Source{failing}, []string{DefaultFile}},
		{"no sources", nil, nil, []string{DefaultFile}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discover(context.Background(), tt.defaults, tt.sources...)
			assert.Equal(t, tt.want, got)
		})
	}
}
