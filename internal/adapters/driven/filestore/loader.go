package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DatasetLoader = (*Loader)(nil)

// Extension of collection files
const Extension = ".json"

// Loader reads every *.json file of a directory as one table.
// Each file must hold a JSON array of flat objects; the table name is the
// file name without extension.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given directory
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the directory being loaded
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads all collections into a new dataset. Any unreadable or malformed
// file fails the whole load so a partial snapshot is never produced.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsCollectionFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	tables := make([]*domain.Table, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		table, err := readTable(filepath.Join(l.dir, name))
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return domain.NewDataset(tables...), nil
}

// IsCollectionFile reports whether a file name is loaded as a table.
// Hidden and editor temp files are ignored.
func IsCollectionFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, Extension) && !strings.HasPrefix(base, ".")
}

func readTable(path string) (*domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return &domain.Table{
		Name:    strings.TrimSuffix(filepath.Base(path), Extension),
		Records: records,
	}, nil
}
