// Package export renders an owner's category store as one plain-text
// file per category.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

type File struct {
	Name    string
	Content string
}

// FileName is the export name for c.
func FileName(c category.Category) string {
	return string(c) + ".txt"
}

// Files returns one file per non-empty category in canonical order.
// Each sentence sits on its own line.
func Files(a category.Analysis) []File {
	var out []File
	for _, c := range category.All() {
		sentences := a.Sentences(c)
		if len(sentences) == 0 {
			continue
		}
		out = append(out, File{Name: FileName(c), Content: strings.Join(sentences, "\n") + "\n"})
	}
	return out
}

// Lookup finds the export for a single category.
func Lookup(a category.Analysis, c category.Category) (File, bool) {
	for _, f := range Files(a) {
		if f.Name == FileName(c) {
			return f, true
		}
	}
	return File{}, false
}

// WriteDir writes every file of Files into dir, creating it if needed,
// and returns the paths written.
func WriteDir(dir string, a category.Analysis) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	var paths []string
	for _, f := range Files(a) {
		p := filepath.Join(dir, f.Name)
		if err := os.WriteFile(p, []byte(f.Content), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", f.Name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
