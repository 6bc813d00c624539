package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driving"
)

// Ensure datasetService implements DatasetService
var _ driving.DatasetService = (*datasetService)(nil)

// Paging defaults for the data browser
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// datasetService exposes the current dataset snapshot for browsing
type datasetService struct {
	source DatasetSource
}

// NewDatasetService creates a new DatasetService
func NewDatasetService(source DatasetSource) driving.DatasetService {
	return &datasetService{source: source}
}

// ListTables returns every loaded table with its record count
func (s *datasetService) ListTables() []domain.TableInfo {
	ds := s.source.Dataset()
	names := ds.Names()
	out := make([]domain.TableInfo, 0, len(names))
	for _, name := range names {
		out = append(out, domain.TableInfo{Name: name, Records: ds.Table(name).Len()})
	}
	return out
}

// Browse returns one page of a table. A record matches the query when any
// query word occurs in any of its values.
func (s *datasetService) Browse(name string, query string, page, perPage int) (*domain.BrowseResult, error) {
	ds := s.source.Dataset()
	if !ds.Has(name) {
		return nil, fmt.Errorf("%w: table %q", domain.ErrNotFound, name)
	}
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	table := ds.Table(name)
	query = strings.TrimSpace(query)
	records := table.Records
	if query != "" {
		records = matchAnyWord(records, strings.Fields(strings.ToLower(query)))
	}

	total := len(records)
	totalPages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	pageRecords := make([]domain.Record, end-start)
	copy(pageRecords, records[start:end])

	return &domain.BrowseResult{
		Table:      name,
		Query:      query,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Columns:    columnsOf(table.Records),
		Records:    pageRecords,
	}, nil
}

func matchAnyWord(records []domain.Record, words []string) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		values := make([]string, 0, r.Len())
		for _, k := range r.Keys() {
			values = append(values, r.Text(k))
		}
		text := strings.ToLower(strings.Join(values, " "))
		for _, w := range words {
			if strings.Contains(text, w) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// columnsOf returns the union of record keys in first-seen order
func columnsOf(records []domain.Record) []string {
	seen := make(map[string]struct{})
	cols := []string{}
	for _, r := range records {
		for _, k := range r.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}
