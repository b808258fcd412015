package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/dhowden/tag"
	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
)

// Media kinds.
const (
	KindMP3  = "mp3"
	KindWAV  = "wav"
	KindFLAC = "flac"
	KindM4A  = "m4a"
)

// DefaultMaxFetchBytes caps a fetched clip when Resolver.MaxBytes is unset.
const DefaultMaxFetchBytes = 64 << 20

// Media is an opened clip resource, seekable and ready to decode.
type Media struct {
	Ref  string
	Kind string
	Size int64

	r io.ReadSeekCloser
}

// Resolver opens clip refs.
//
// Absolute http(s) URLs are fetched. Root-relative refs ("/audio/x.mp3")
// are read from AudioDir when they map into it, otherwise fetched from
// BaseURL. Anything else is opened as a local path. Fetched bodies are held
// in memory and may not exceed MaxBytes.
type Resolver struct {
	BaseURL  string
	AudioDir string
	Prefix   string
	Client   *http.Client
	MaxBytes int64
}

// Open resolves ref and opens it.
func (r *Resolver) Open(ctx context.Context, ref string) (*Media, error) {
	if isURL(ref) {
		return r.fetch(ctx, ref)
	}
	if strings.HasPrefix(ref, "/") {
		if r.AudioDir != "" {
			prefix := r.Prefix
			if prefix == "" {
				prefix = audiofiles.DefaultPrefix
			}
			if p, ok := audiofiles.LocalPath(r.AudioDir, prefix, ref); ok {
				return openFile(ref, p)
			}
		}
		if r.BaseURL != "" {
			return r.fetch(ctx, strings.TrimSuffix(r.BaseURL, "/")+ref)
		}
	}
	return openFile(ref, ref)
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) (*Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}
	limit := r.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxFetchBytes
	}
	if resp.ContentLength > limit {
		return nil, fetchTooLarge(rawURL, limit)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if int64(len(data)) > limit {
		return nil, fetchTooLarge(rawURL, limit)
	}

	kind := kindFromContentType(resp.Header.Get("Content-Type"))
	if kind == "" {
		kind = kindFromRef(rawURL)
	}
	return &Media{
		Ref:  rawURL,
		Kind: kind,
		Size: int64(len(data)),
		r:    nopCloser{bytes.NewReader(data)},
	}, nil
}

func fetchTooLarge(rawURL string, limit int64) error {
	return fmt.Errorf("fetch %s: %w (limit %s)", rawURL, ErrClipTooLarge, humanize.IBytes(uint64(limit))) //nolint:gosec // positive
}

func openFile(ref, p string) (*Media, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	m := &Media{Ref: ref, Kind: kindFromRef(p), r: f}
	if fi, err := f.Stat(); err == nil {
		m.Size = fi.Size()
	}
	return m, nil
}

// Close releases the underlying resource.
func (m *Media) Close() error { return m.r.Close() }

type nopCloser struct{ io.ReadSeeker }

func (nopCloser) Close() error { return nil }

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func kindFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return KindMP3
	case "audio/wav", "audio/wave", "audio/x-wav", "audio/vnd.wave":
		return KindWAV
	case "audio/flac", "audio/x-flac":
		return KindFLAC
	case "audio/mp4", "audio/m4a", "audio/x-m4a", "audio/aac", "video/mp4":
		return KindM4A
	}
	return ""
}

func kindFromRef(ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".mp3":
		return KindMP3
	case ".wav", ".wave":
		return KindWAV
	case ".flac":
		return KindFLAC
	case ".m4a", ".mp4":
		return KindM4A
	}
	return ""
}

// decode opens a decoder for m. On success the decoder owns m.
func decode(m *Media) (beep.StreamSeekCloser, beep.Format, error) {
	switch m.Kind {
	case KindMP3:
		return decodeMP3(m.r)
	case KindWAV:
		return wav.Decode(m.r)
	case KindFLAC:
		// some taggers prepend ID3v2 to FLAC files
		if err := skipID3v2(m.r); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(m.r)
	case KindM4A:
		s, format, _, err := decodeM4A(m.r)
		return s, format, err
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, m.Ref)
}

// readTags reads embedded tags and rewinds m. Missing tags are not an error.
func readTags(m *Media) Tags {
	t := Tags{Format: strings.ToUpper(m.Kind)}
	if md, err := tag.ReadFrom(m.r); err == nil {
		t.Title = strings.TrimSpace(md.Title())
		t.Artist = strings.TrimSpace(md.Artist())
	}
	_, _ = m.r.Seek(0, io.SeekStart)
	return t
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start when
// there is none.
func skipID3v2(r io.ReadSeeker) error {
	var header [10]byte
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	n, err := io.ReadFull(r, header[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < len(header) || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	// syncsafe: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(int64(len(header))+size, io.SeekStart)
	return err
}
