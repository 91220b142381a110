package render

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var errFound = errors.New("found")

// ArtLibrary loads ASCII pictures stored as <dir>/**/<name>.txt.
type ArtLibrary struct {
	fs  afero.Fs
	dir string
}

// NewArtLibrary creates an ArtLibrary rooted at dir on fsys.
//
// Precondition: fsys must be non-nil.
func NewArtLibrary(fsys afero.Fs, dir string) *ArtLibrary {
	return &ArtLibrary{fs: fsys, dir: dir}
}

// Lines returns the picture called name. A file directly under the library
// root wins over one in a subdirectory; among subdirectories the first in
// lexical walk order wins.
//
// Postcondition: Returns at least one line; a missing picture yields a
// single placeholder line.
func (a *ArtLibrary) Lines(name string) []string {
	if data, err := afero.ReadFile(a.fs, filepath.Join(a.dir, name+".txt")); err == nil {
		return splitLines(data)
	}

	var match string
	_ = afero.Walk(a.fs, a.dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && info.Name() == name+".txt" {
			match = path
			return errFound
		}
		return nil
	})
	if match != "" {
		if data, err := afero.ReadFile(a.fs, match); err == nil {
			return splitLines(data)
		}
	}
	return []string{"[art not found: " + name + "]"}
}

func splitLines(data []byte) []string {
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return strings.Split(text, "\n")
}
