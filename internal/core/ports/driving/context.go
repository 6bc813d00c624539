package driving

import "github.com/custodia-labs/sercha-insight/internal/core/domain"

// ContextService renders prompt-ready excerpts of the current dataset
type ContextService interface {
	// Build renders the context of a single domain. Unknown domains yield "".
	Build(id domain.DomainID, question string) string

	// Assemble renders the contexts of several domains in order, labelling
	// each one when more than one domain is involved.
	Assemble(domains []domain.DomainID, question string) string
}
