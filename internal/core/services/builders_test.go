package services

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

func TestBuildSales_FiltersMatchingRecords(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainSales, "show me pending orders for Acme Corp")

	lines := strings.Split(got, "\n")
	assert.Equal(t, "=== SALES TRANSACTIONS (1 of 40 total) ===", lines[0])
	assert.Equal(t, "Date | Status | Customer | Product | Qty | Price | LineTotal | OrderTotal", lines[1])
	assert.Equal(t, "2024-01-05 | Pending | Acme Corp | Widget | 2 | 10.5 | 21 | 21", lines[3])
	assert.Len(t, lines, 4)
}

func TestBuildSales_FallbackSample(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainSales, "revenue trends overall")

	assert.True(t, strings.HasPrefix(got, "=== SALES TRANSACTIONS (30 of 40 total) ===\n"))
	// 3 header lines + 30 rows
	assert.Len(t, strings.Split(got, "\n"), 33)
}

func TestBuildSales_NullRendersPlaceholder(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainSales, "globex orders")

	assert.Contains(t, got, "2024-01-06 | Shipped | Globex | Gadget | 1 | - | 99 | 99")
}

func TestBuildSales_Appendix(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainSales, "which promotions gave the best discount")

	assert.Contains(t, got, "\n=== PROMOTIONS (1 total, showing 1) ===\n1. {\"PROMO_ID\":1,\"NAME\":\"Spring <Sale>\",\"DISCOUNT_PCT\":15}\n")
	assert.NotContains(t, got, "TERRITORIES")
}

func TestBuildSales_MissingAppendixCollection(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainSales, "open quotes")

	assert.Contains(t, got, "\n=== QUOTES (0 total, showing 0) ===\n")
}

func TestBuildHR(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainHR, "employees in Seattle executive team")

	assert.True(t, strings.HasPrefix(got, "=== HR EMPLOYEE DATA (2 of 2 total) ===\n"))
	assert.Contains(t, got, "100 | Steven | King | President | Executive | 24000 | 2003-06-17 | Seattle | US | - | Health,Dental | true")
	assert.Contains(t, got, "| Steven King | Health | false")
}

func TestBuildFinance_GatedSection(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainFinance, "what is our budget allocation for marketing")

	assert.True(t, strings.HasPrefix(got, "=== BUDGETS (1 of 2 total) ===\n"), got)
	assert.Contains(t, got, "1 | 2024 | 50000 | Marketing | Commercial")
	assert.NotContains(t, got, "FINANCIAL TRANSACTIONS")
}

func TestBuildFinance_BothSections(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainFinance, "posted transactions against the engineering budget")

	assert.True(t, strings.HasPrefix(got, "=== FINANCIAL TRANSACTIONS ("), got)
	assert.Contains(t, got, "\n=== BUDGETS (1 of 2 total) ===\n")
	assert.Contains(t, got, "2 | 2024 | 80000 | Engineering | -")
}

func TestBuildFinance_AppendixOnly(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainFinance, "list vendor invoices")

	want := "\n=== INVOICES (1 total, showing 1) ===\n1. {\"INVOICE_ID\":7,\"VENDOR\":\"Paper Co\",\"TOTAL\":310}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFinance_Overview(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainFinance, "hello finance")

	want := "=== FINANCIAL TRANSACTIONS (3 of 3) ===\n" +
		"Date | Amount | Currency | Status | Account\n" +
		"----" + "-|-" + "------" + "-|-" + "--------" + "-|-" + "------" + "-|-" + "-------" + "\n" +
		"2024-03-01 | 1200 | EUR | POSTED | 4000\n" +
		"2024-03-02 | 50 | USD | PENDING | 4100\n" +
		"2024-03-03 | 75 | GBP | POSTED | 4200\n" +
		"=== BUDGETS (2 of 2) ===\n" +
		"Year | Amount | CostCenter\n" +
		"----" + "-|-" + "------" + "-|-" + "----------" + "\n" +
		"2024 | 50000 | Marketing\n" +
		"2024 | 80000 | Engineering"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overview mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInventory_UnfilteredTransfers(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainInventory, "warehouse transfer history")

	assert.True(t, strings.HasPrefix(got, "=== WAREHOUSE TRANSFERS (1 of 1 total) ===\n"), got)
	assert.Contains(t, got, "2024-04-03 | WH1 | WH2 | 10000 | 8000")
	assert.NotContains(t, got, "STOCK MOVEMENTS")
}

func TestBuildInventory_Overview(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainInventory, "warehouses")

	assert.True(t, strings.HasPrefix(got, "=== STOCK MOVEMENTS (1 of 1) ===\nDate | Type | SKU | Product | Qty | Warehouse\n"), got)
}

func TestBuildAudit_AlwaysIncludesChangeLog(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainAudit, "who exported data last week")

	assert.True(t, strings.HasPrefix(got, "=== CHANGE LOG (2 of 2 total) ===\n"), got)
	assert.Contains(t, got, "\n=== EXPORT LOG (1 total, showing 1) ===\n")
	assert.NotContains(t, got, "SECURITY EVENTS")
}

func TestBuildSchema_Outline(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainSchema, "which columns are in the employees table")

	want := "=== DATABASE SCHEMA METADATA (2 of 4 records) ===\n\n" +
		"Schema: HR\n" +
		"  Table: EMPLOYEES\n" +
		"    - EMPLOYEE_ID (NUMBER(6))\n" +
		"      Oracle: Primary key\n" +
		"    - FIRST_NAME (VARCHAR2(20))\n" +
		"      AI: Given name\n" +
		"\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSchema_FallbackGroupsInFirstSeenOrder(t *testing.T) {
	svc := newFixtureContextService(t)

	got := svc.Build(domain.DomainSchema, "xyzzy")

	want := "=== DATABASE SCHEMA METADATA (4 of 4 records) ===\n\n" +
		"Schema: HR\n" +
		"  Table: EMPLOYEES\n" +
		"    - EMPLOYEE_ID (NUMBER(6))\n" +
		"      Oracle: Primary key\n" +
		"    - FIRST_NAME (VARCHAR2(20))\n" +
		"      AI: Given name\n" +
		"  Table: DEPARTMENTS\n" +
		"    - DEPARTMENT_ID (NUMBER(4))\n" +
		"\n" +
		"Schema: SALES\n" +
		"  Table: ORDERS\n" +
		"    - ORDER_ID (NUMBER)\n" +
		"      Analyst: Surrogate key\n" +
		"\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_UnknownDomain(t *testing.T) {
	svc := newFixtureContextService(t)
	assert.Empty(t, svc.Build("marketing", "anything"))
}

func TestBuild_EmptyDatasetNeverFails(t *testing.T) {
	svc, err := NewContextService(defaultRegistry(t), staticSource{ds: domain.NewDataset()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range domain.KnownDomains() {
		got := svc.Build(id, "anything at all")
		assert.NotEmptyf(t, got, "domain %s", id)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	svc := newFixtureContextService(t)
	q := "pending orders with a discount"
	assert.Equal(t, svc.Build(domain.DomainSales, q), svc.Build(domain.DomainSales, q))
}

func TestFilterRecords_LimitAndOrder(t *testing.T) {
	records := []domain.Record{
		rec("NAME", "alpha one"),
		rec("NAME", "beta"),
		rec("NAME", "alpha two"),
		rec("NAME", "alpha three"),
	}

	got := FilterRecords(records, []string{"NAME"}, Tokenize("alpha", BuilderMinLen), 2)

	assert.Len(t, got, 2)
	assert.Equal(t, "alpha one", got[0].Text("NAME"))
	assert.Equal(t, "alpha two", got[1].Text("NAME"))
	assert.Empty(t, FilterRecords(records, []string{"NAME"}, Tokenize("", BuilderMinLen), 10))
}
