package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/tienduong-21/extract-infor/internal/model"
)

// Pair is one expected/actual file pairing, matched by filename stem. The
// expected directory defines the universe of files to score; an expected file
// without an actual counterpart still produces a pair with HasActual false.
type Pair struct {
	FileID    string
	Expected  m.Path
	Actual    m.Path
	HasActual bool
}

// CorpusFS abstracts corpus discovery so the runner can be tested without
// touching the disk.
type CorpusFS interface {
	// Pairs lists the expected documents and resolves their actual
	// counterparts. It fails only when the expected directory itself is
	// unusable; everything else is a per-file condition.
	Pairs(expectedDir, actualDir m.Path) ([]Pair, error)
}

// LocalCorpusFS is the disk-backed CorpusFS.
type LocalCorpusFS struct{}

// NewLocalCorpusFS constructs a LocalCorpusFS ready to be wired into the
// runner.
func NewLocalCorpusFS() *LocalCorpusFS {
	return &LocalCorpusFS{}
}

// Pairs implements CorpusFS.
func (a *LocalCorpusFS) Pairs(expectedDir, actualDir m.Path) ([]Pair, error) {
	entries, err := os.ReadDir(string(expectedDir))
	if err != nil {
		return nil, fmt.Errorf("expected directory %s: %w", expectedDir, err)
	}

	pairs := make([]Pair, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		actual := m.Path(filepath.Join(string(actualDir), entry.Name()))

		pair := Pair{
			FileID:   stem,
			Expected: m.Path(filepath.Join(string(expectedDir), entry.Name())),
			Actual:   actual,
		}

		if info, statErr := os.Stat(string(actual)); statErr == nil && !info.IsDir() {
			pair.HasActual = true
		}

		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].FileID < pairs[j].FileID
	})

	return pairs, nil
}
