// Package loader reads the plain-text corpus from a folder.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rag/internal/domain"
)

const textExt = ".txt"

// LoadFolder reads every .txt file directly inside dir. Other files and
// subdirectories are skipped. Documents are returned sorted by ID.
// Two files that map to the same ID collapse into one; the file that sorts
// last by name wins.
func LoadFolder(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data folder: %w", err)
	}
	byID := make(map[string]domain.Document)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), textExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		id := DocumentID(e.Name())
		byID[id] = domain.Document{ID: id, Path: path, Content: string(data)}
	}
	docs := make([]domain.Document, 0, len(byID))
	for _, d := range byID {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// DocumentID derives "doc_<stem>" from a file name, where the stem is
// everything before the first dot.
func DocumentID(filename string) string {
	base := filepath.Base(filename)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return "doc_" + base
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
