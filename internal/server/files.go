package server

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/llehouerou/voicenotes/internal/audiofiles"
)

// audioFS exposes only what the listing can return: regular files at the top
// of dir whose extension is allowed. Everything else does not exist, so the
// file server never renders a directory index.
type audioFS struct {
	dir  http.Dir
	exts []string
}

func (a audioFS) Open(name string) (http.File, error) {
	name = path.Clean("/" + name)
	if strings.Count(name, "/") != 1 || !audiofiles.IsAudioFile(name, a.exts) {
		return nil, fs.ErrNotExist
	}
	f, err := a.dir.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
