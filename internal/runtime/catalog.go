package runtime

import (
	"sync/atomic"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// Catalog holds the current dataset snapshot. Readers load the pointer once
// per call; reloads swap the whole snapshot atomically.
type Catalog struct {
	current atomic.Pointer[domain.Dataset]
	config  *domain.RuntimeConfig
}

// NewCatalog creates a catalog holding an empty dataset
func NewCatalog(config *domain.RuntimeConfig) *Catalog {
	c := &Catalog{config: config}
	c.current.Store(domain.NewDataset())
	return c
}

// Dataset returns the current snapshot (never nil)
func (c *Catalog) Dataset() *domain.Dataset {
	return c.current.Load()
}

// Swap installs a new snapshot and returns the previous one.
// A nil snapshot is ignored.
func (c *Catalog) Swap(ds *domain.Dataset) *domain.Dataset {
	if ds == nil {
		return c.current.Load()
	}
	old := c.current.Swap(ds)
	if c.config != nil {
		c.config.SetDatasetTables(len(ds.Names()))
	}
	return old
}
