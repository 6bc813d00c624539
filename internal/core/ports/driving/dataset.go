package driving

import "github.com/custodia-labs/sercha-insight/internal/core/domain"

// DatasetService lets users browse the loaded tables
type DatasetService interface {
	// ListTables returns every loaded table with its record count
	ListTables() []domain.TableInfo

	// Browse returns one page of a table, optionally filtered by a keyword query
	Browse(name string, query string, page, perPage int) (*domain.BrowseResult, error)
}
