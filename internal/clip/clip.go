// Package clip describes one audio resource shown as a card on the board.
package clip

import (
	"net/url"
	"path"
	"strings"
	"unicode"
)

// Clip identifies an audio resource and its display title.
type Clip struct {
	Ref   string // URL or root-relative path, e.g. "/audio/voice-memo_3.mp3"
	Title string
}

// New creates a Clip with a title derived from the ref's filename.
func New(ref string) Clip {
	return Clip{Ref: ref, Title: TitleFromRef(ref)}
}

// NewList creates clips for every ref, preserving order.
func NewList(refs []string) []Clip {
	clips := make([]Clip, 0, len(refs))
	for _, ref := range refs {
		clips = append(clips, New(ref))
	}
	return clips
}

// TitleFromRef derives a display title from a clip ref:
// "/audio/late-night-idea_km8uea.wav" -> "Late Night Idea".
func TitleFromRef(ref string) string {
	name := baseName(ref)

	// Strip extension
	if dot := strings.LastIndexByte(name, '.'); dot > 0 {
		name = name[:dot]
	}

	// Strip trailing disambiguation suffix
	if underscore := strings.IndexByte(name, '_'); underscore >= 0 {
		name = name[:underscore]
	}

	name = strings.ReplaceAll(name, "-", " ")
	return titleCase(name)
}

// baseName returns the last path segment of a URL or path, unescaped.
func baseName(ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	if unescaped, err := url.PathUnescape(base); err == nil {
		base = unescaped
	}
	return base
}

// titleCase upper-cases the first letter of every word and leaves the rest untouched.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		word := isWordRune(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
