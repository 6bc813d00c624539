package domain

import (
	"fmt"
	"strings"
)

// DomainID identifies a business domain a question can be routed to.
type DomainID string

const (
	DomainSales     DomainID = "sales"
	DomainHR        DomainID = "hr"
	DomainFinance   DomainID = "finance"
	DomainInventory DomainID = "inventory"
	DomainAudit     DomainID = "audit"
	DomainSchema    DomainID = "schema"
)

// CrossLabel is the attribution label for answers spanning several domains.
const CrossLabel = "cross"

var knownDomains = []DomainID{
	DomainSales,
	DomainHR,
	DomainFinance,
	DomainInventory,
	DomainAudit,
	DomainSchema,
}

// KnownDomains returns every domain identifier in declaration order.
func KnownDomains() []DomainID {
	out := make([]DomainID, len(knownDomains))
	copy(out, knownDomains)
	return out
}

// IsValid reports whether d is one of the fixed domain identifiers.
func (d DomainID) IsValid() bool {
	for _, k := range knownDomains {
		if d == k {
			return true
		}
	}
	return false
}

// ParseDomainID normalises s and checks it names a known domain.
func ParseDomainID(s string) (DomainID, error) {
	id := DomainID(strings.ToLower(strings.TrimSpace(s)))
	if !id.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
	return id, nil
}

// Domain is a registry entry: display metadata, routing keywords and the
// declarative recipe used to build its context.
type Domain struct {
	ID          DomainID    `json:"id"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
	Description string      `json:"description"`
	Keywords    []string    `json:"keywords"`
	Builder     BuilderSpec `json:"-"`
}

// DomainSummary is the public view of a domain offered to users picking one.
type DomainSummary struct {
	ID          DomainID `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

// Summary returns the display metadata of the domain
func (d *Domain) Summary() DomainSummary {
	return DomainSummary{
		ID:          d.ID,
		Name:        d.Name,
		Icon:        d.Icon,
		Color:       d.Color,
		Description: d.Description,
	}
}

// IsCompoundKeyword reports whether a keyword is matched as a phrase.
// Phrases contain a space or an underscore.
func IsCompoundKeyword(keyword string) bool {
	return strings.ContainsAny(keyword, " _")
}

// Registry is the immutable, ordered set of domains plus router thresholds.
// Declaration order is the routing tie-breaker.
type Registry struct {
	domains []Domain
	index   map[DomainID]int
	router  RouterConfig
}

// NewRegistry validates and freezes a domain list.
func NewRegistry(domains []Domain, router RouterConfig) (*Registry, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: registry has no domains", ErrInvalidInput)
	}
	if err := router.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		domains: make([]Domain, 0, len(domains)),
		index:   make(map[DomainID]int, len(domains)),
		router:  router,
	}
	for _, d := range domains {
		if !d.ID.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, d.ID)
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("%w: domain %q declared twice", ErrInvalidInput, d.ID)
		}
		if d.Name == "" {
			d.Name = string(d.ID)
		}

		keywords := make([]string, 0, len(d.Keywords))
		for _, k := range d.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			keywords = append(keywords, k)
		}
		d.Keywords = keywords

		if err := d.Builder.Validate(); err != nil {
			return nil, fmt.Errorf("domain %q: %w", d.ID, err)
		}

		r.index[d.ID] = len(r.domains)
		r.domains = append(r.domains, d)
	}
	return r, nil
}

// Domains returns the domains in declaration order. Callers must not mutate
// the returned keyword or builder slices.
func (r *Registry) Domains() []Domain {
	out := make([]Domain, len(r.domains))
	copy(out, r.domains)
	return out
}

// Get returns the domain with the given identifier
func (r *Registry) Get(id DomainID) (*Domain, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return &r.domains[i], true
}

// IDs returns the registered identifiers in declaration order
func (r *Registry) IDs() []DomainID {
	out := make([]DomainID, len(r.domains))
	for i, d := range r.domains {
		out[i] = d.ID
	}
	return out
}

// Summaries returns display metadata for every domain
func (r *Registry) Summaries() []DomainSummary {
	out := make([]DomainSummary, len(r.domains))
	for i := range r.domains {
		out[i] = r.domains[i].Summary()
	}
	return out
}

// Router returns the routing thresholds
func (r *Registry) Router() RouterConfig {
	return r.router
}

// WithRouter returns a copy of the registry using different thresholds.
func (r *Registry) WithRouter(router RouterConfig) (*Registry, error) {
	if err := router.Validate(); err != nil {
		return nil, err
	}
	cp := *r
	cp.router = router
	return &cp, nil
}
