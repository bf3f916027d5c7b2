// Package fsutil handles filesystem naming for downloaded media.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"playlistfy/internal/domain/regex"

	"golang.org/x/text/unicode/norm"
)

const fallbackName = "untitled"

// SanitizeName converts an arbitrary title into a filename valid on the
// target OS. Path separators, reserved punctuation and control characters
// become underscores, whitespace collapses, and leading/trailing dots and
// spaces are trimmed. The result is NFKC-normalized so visually identical
// titles land on the same file. Sanitizing twice yields the same value.
func SanitizeName(title string) string {
	name := norm.NFKC.String(title)
	name = regex.InvalidCharsCompile().ReplaceAllString(name, "_")
	name = regex.ExtraSpacesCompile().ReplaceAllString(name, " ")
	name = strings.Trim(name, ". ")

	if name == "" {
		return fallbackName
	}
	return name
}

// Namer hands out collision-free base names inside one directory. A name
// counts as taken when a file with any extension already uses it on disk,
// or when an earlier Assign in the same batch reserved it.
type Namer struct {
	dir  string
	used map[string]bool
}

// NewNamer returns a namer for one target directory.
func NewNamer(dir string) *Namer {
	return &Namer{dir: dir, used: make(map[string]bool)}
}

// Assign sanitizes the title and reserves the first free variant of it,
// suffixing "name (2)", "name (3)" and so on past collisions.
func (n *Namer) Assign(title string) string {
	base := SanitizeName(title)
	if n.free(base) {
		n.used[base] = true
		return base
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", base, i)
		if n.free(candidate) {
			n.used[candidate] = true
			return candidate
		}
	}
}

func (n *Namer) free(base string) bool {
	if n.used[base] {
		return false
	}

	entries, err := os.ReadDir(n.dir)
	if err != nil {
		return true
	}
	for _, e := range entries {
		name := e.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == base {
			return false
		}
	}
	return true
}

// PlaylistDir creates and returns the sanitized per-playlist subdirectory
// under outputDir.
func PlaylistDir(outputDir, playlistTitle string) (string, error) {
	dir := filepath.Join(outputDir, SanitizeName(playlistTitle))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create playlist directory %q: %w", dir, err)
	}
	return dir, nil
}
