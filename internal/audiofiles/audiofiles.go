// Package audiofiles lists the playable audio files of a directory as
// URL-usable, root-relative paths.
package audiofiles

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions is the allow-list used when none is configured.
var DefaultExtensions = []string{".mp3", ".wav", ".m4a"}

// DefaultPrefix is the URL prefix under which files are served.
const DefaultPrefix = "/audio"

// Lister lists audio files in Dir.
type Lister struct {
	Dir        string
	Prefix     string   // URL prefix, e.g. "/audio"
	Extensions []string // lower-case, with or without leading dot
}

// New creates a Lister with default prefix and extensions.
func New(dir string) Lister {
	return Lister{Dir: dir, Prefix: DefaultPrefix, Extensions: DefaultExtensions}
}

// List returns "/audio/<name>" for every regular file whose extension is allowed.
// Entries are sorted by filename.
func (l Lister) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("read audio dir: %w", err)
	}

	exts := normalizeExtensions(l.Extensions)
	prefix := l.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		if !IsAudioFile(e.Name(), exts) {
			continue
		}
		files = append(files, path.Join("/", prefix, url.PathEscape(e.Name())))
	}
	return files, nil
}

// IsAudioFile reports whether name has one of the given extensions (case-insensitive).
func IsAudioFile(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return slices.Contains(normalizeExtensions(exts), ext)
}

// normalizeExtensions lower-cases extensions and ensures a leading dot.
func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// LocalPath maps a root-relative ref ("/audio/a%20b.mp3") back to a file in dir.
// Returns false if ref is not under prefix or escapes dir.
func LocalPath(dir, prefix, ref string) (string, bool) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	prefix = "/" + strings.Trim(prefix, "/") + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	name, err := url.PathUnescape(strings.TrimPrefix(ref, prefix))
	if err != nil || name == "" {
		return "", false
	}
	if !filepath.IsLocal(name) {
		return "", false
	}
	return filepath.Join(dir, name), true
}
