package driven

import (
	"context"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// DatasetLoader reads the prepared record collections into a snapshot
type DatasetLoader interface {
	// Load reads every collection and returns a new immutable dataset
	Load(ctx context.Context) (*domain.Dataset, error)
}
