package driving

import "github.com/custodia-labs/sercha-insight/internal/core/domain"

// RouterService decides which domain(s) a question belongs to
type RouterService interface {
	// Route scores every domain against the question. It never fails;
	// ambiguity is reported as an uncertain result.
	Route(question string) domain.RouteResult

	// Domains returns the registered domains in declaration order
	Domains() []domain.DomainSummary
}
