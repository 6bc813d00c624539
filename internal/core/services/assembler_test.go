package services

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

func TestAssemble_SingleDomainIsUnlabelled(t *testing.T) {
	svc := newFixtureContextService(t)
	q := "pending orders"

	assert.Equal(t, svc.Build(domain.DomainSales, q), svc.Assemble([]domain.DomainID{domain.DomainSales}, q))
}

func TestAssemble_CrossDomainLabels(t *testing.T) {
	svc := newFixtureContextService(t)
	q := "compare headcount and commission structure"

	got := svc.Assemble([]domain.DomainID{domain.DomainSales, domain.DomainHR}, q)

	want := "\n\n--- SALES AGENT DATA ---\n" + svc.Build(domain.DomainSales, q) +
		"\n\n--- HR AGENT DATA ---\n" + svc.Build(domain.DomainHR, q)
	assert.Equal(t, want, got)
	assert.Less(t, strings.Index(got, "SALES AGENT DATA"), strings.Index(got, "HR AGENT DATA"))
}

func TestAssemble_SkipsUnknownDomains(t *testing.T) {
	svc := newFixtureContextService(t)
	q := "pending orders"

	got := svc.Assemble([]domain.DomainID{"marketing", domain.DomainSales}, q)

	assert.Equal(t, svc.Build(domain.DomainSales, q), got)
	assert.Empty(t, svc.Assemble(nil, q))
	assert.Empty(t, svc.Assemble([]domain.DomainID{"marketing"}, q))
}

// swappingSource returns a different snapshot on every call.
type swappingSource struct {
	mu    sync.Mutex
	calls int
	sets  []*domain.Dataset
}

func (s *swappingSource) Dataset() *domain.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.sets[s.calls%len(s.sets)]
	s.calls++
	return ds
}

func TestAssemble_ReadsOneSnapshotPerCall(t *testing.T) {
	source := &swappingSource{sets: []*domain.Dataset{fixtureDataset(), domain.NewDataset()}}
	svc, err := NewContextService(defaultRegistry(t), source, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := svc.Assemble([]domain.DomainID{domain.DomainSales, domain.DomainHR}, "pending orders")

	assert.Equal(t, 1, source.calls)
	assert.Contains(t, got, "(1 of 40 total)")
	assert.Contains(t, got, "(2 of 2 total)")
}

func TestAssemble_ConcurrentUse(t *testing.T) {
	svc := newFixtureContextService(t)
	want := svc.Assemble([]domain.DomainID{domain.DomainSales, domain.DomainFinance}, "pending invoices")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := svc.Assemble([]domain.DomainID{domain.DomainSales, domain.DomainFinance}, "pending invoices")
			if got != want {
				t.Error("concurrent assemble produced different output")
			}
		}()
	}
	wg.Wait()
}
