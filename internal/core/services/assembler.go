package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driving"
)

// Ensure contextService implements ContextService
var _ driving.ContextService = (*contextService)(nil)

// DatasetSource provides the current dataset snapshot
type DatasetSource interface {
	Dataset() *domain.Dataset
}

// contextService builds and assembles domain contexts
type contextService struct {
	builders map[domain.DomainID]*contextBuilder
	source   DatasetSource
	logger   *zap.Logger
}

// NewContextService compiles every domain's builder spec.
func NewContextService(registry *domain.Registry, source DatasetSource, logger *zap.Logger) (driving.ContextService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &contextService{
		builders: make(map[domain.DomainID]*contextBuilder),
		source:   source,
		logger:   logger,
	}
	for _, id := range registry.IDs() {
		d, _ := registry.Get(id)
		b, err := compileBuilder(d)
		if err != nil {
			return nil, err
		}
		s.builders[id] = b
	}
	return s, nil
}

// Build renders the context of a single domain
func (s *contextService) Build(id domain.DomainID, question string) string {
	b, ok := s.builders[id]
	if !ok {
		return ""
	}
	return b.build(s.source.Dataset(), question)
}

// Assemble renders several domain contexts from one snapshot. Unknown domain
// identifiers are skipped; labels are added only when more than one known
// domain remains.
func (s *contextService) Assemble(domains []domain.DomainID, question string) string {
	ds := s.source.Dataset()

	builders := make([]*contextBuilder, 0, len(domains))
	for _, id := range domains {
		b, ok := s.builders[id]
		if !ok {
			s.logger.Warn("skipping unknown domain", zap.String("domain", string(id)))
			continue
		}
		builders = append(builders, b)
	}

	if len(builders) == 1 {
		return builders[0].build(ds, question)
	}

	var sb strings.Builder
	for _, b := range builders {
		sb.WriteString("\n\n--- ")
		sb.WriteString(strings.ToUpper(b.name))
		sb.WriteString(" DATA ---\n")
		sb.WriteString(b.build(ds, question))
	}
	return sb.String()
}
