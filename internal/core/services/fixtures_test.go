package services

import (
	"fmt"
	"testing"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/registry"
)

// rec builds a record from alternating name/value pairs.
func rec(pairs ...any) domain.Record {
	fields := make([]domain.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		fields = append(fields, domain.Field{Name: pairs[i].(string), Value: pairs[i+1]})
	}
	return domain.NewRecord(fields...)
}

type staticSource struct {
	ds *domain.Dataset
}

func (s staticSource) Dataset() *domain.Dataset {
	return s.ds
}

func defaultRegistry(t *testing.T) *domain.Registry {
	t.Helper()
	reg, err := registry.Default()
	if err != nil {
		t.Fatalf("load default registry: %v", err)
	}
	return reg
}

func fixtureDataset() *domain.Dataset {
	sales := &domain.Table{Name: "sales_denormalized", Records: []domain.Record{
		rec("ORDER_ID", 1, "ORDER_DATE", "2024-01-05", "ORDER_STATUS", "Pending", "CUSTOMER_ID", 501,
			"CUSTOMER_NAME", "Acme Corp", "CUSTOMER_EMAIL", "buyer@acme.test", "PRODUCT_ID", 9,
			"PRODUCT_NAME", "Widget", "QUANTITY", 2, "UNIT_PRICE", 10.5, "LINE_TOTAL", 21, "ORDER_TOTAL_AMOUNT", 21),
		rec("ORDER_ID", 2, "ORDER_DATE", "2024-01-06", "ORDER_STATUS", "Shipped", "CUSTOMER_ID", 502,
			"CUSTOMER_NAME", "Globex", "PRODUCT_NAME", "Gadget", "QUANTITY", 1, "UNIT_PRICE", nil,
			"LINE_TOTAL", 99, "ORDER_TOTAL_AMOUNT", 99),
	}}
	for i := 3; i <= 40; i++ {
		sales.Records = append(sales.Records, rec(
			"ORDER_ID", i, "ORDER_DATE", "2024-02-01", "ORDER_STATUS", "Confirmed",
			"CUSTOMER_NAME", fmt.Sprintf("Customer %d", i), "PRODUCT_NAME", fmt.Sprintf("Item %d", i),
			"QUANTITY", 1, "UNIT_PRICE", 5, "LINE_TOTAL", 5, "ORDER_TOTAL_AMOUNT", 5,
		))
	}

	promotions := &domain.Table{Name: "sales_promotions", Records: []domain.Record{
		rec("PROMO_ID", 1, "NAME", "Spring <Sale>", "DISCOUNT_PCT", 15),
	}}

	hr := &domain.Table{Name: "hr_denormalized", Records: []domain.Record{
		rec("EMPLOYEE_ID", 100, "FIRST_NAME", "Steven", "LAST_NAME", "King", "JOB_TITLE", "President",
			"DEPARTMENT_NAME", "Executive", "SALARY", 24000, "HIRE_DATE", "2003-06-17", "CITY", "Seattle",
			"COUNTRY_ID", "US", "MANAGER_NAME", nil, "BENEFIT_TYPES", "Health,Dental", "IS_TEAM_LEAD", true),
		rec("EMPLOYEE_ID", 101, "FIRST_NAME", "Neena", "LAST_NAME", "Kochhar", "JOB_TITLE", "Administration Vice President",
			"DEPARTMENT_NAME", "Executive", "SALARY", 17000, "HIRE_DATE", "2005-09-21", "CITY", "Seattle",
			"COUNTRY_ID", "US", "MANAGER_NAME", "Steven King", "BENEFIT_TYPES", "Health", "IS_TEAM_LEAD", false),
	}}

	transactions := &domain.Table{Name: "finance_transactions_denormalized", Records: []domain.Record{
		rec("TRANSACTION_DATE", "2024-03-01", "AMOUNT", 1200, "CURRENCY_CD", "EUR", "AMOUNT_USD", 1300.5, "POSTING_STATUS", "POSTED", "ACCOUNT_ID", "4000", "FISCAL_PERIOD", "2024-03"),
		rec("TRANSACTION_DATE", "2024-03-02", "AMOUNT", 50, "CURRENCY_CD", "USD", "AMOUNT_USD", 50, "POSTING_STATUS", "PENDING", "ACCOUNT_ID", "4100", "FISCAL_PERIOD", "2024-03"),
		rec("TRANSACTION_DATE", "2024-03-03", "AMOUNT", 75, "CURRENCY_CD", "GBP", "AMOUNT_USD", nil, "POSTING_STATUS", "POSTED", "ACCOUNT_ID", "4200", "FISCAL_PERIOD", "2024-03"),
	}}
	budgets := &domain.Table{Name: "finance_budgets_denormalized", Records: []domain.Record{
		rec("BUDGET_ID", 1, "FISCAL_YEAR", 2024, "APPROVED_AMOUNT", 50000, "COST_CENTER_NAME", "Marketing", "PARENT_COST_CENTER_NAME", "Commercial"),
		rec("BUDGET_ID", 2, "FISCAL_YEAR", 2024, "APPROVED_AMOUNT", 80000, "COST_CENTER_NAME", "Engineering", "PARENT_COST_CENTER_NAME", nil),
	}}
	invoices := &domain.Table{Name: "finance_invoices", Records: []domain.Record{
		rec("INVOICE_ID", 7, "VENDOR", "Paper Co", "TOTAL", 310),
	}}

	movements := &domain.Table{Name: "inventory_movements_denormalized", Records: []domain.Record{
		rec("MOVEMENT_DATE", "2024-04-01", "MOVEMENT_TYPE", "RECEIPT", "SKU", "SKU-1", "PRODUCT_DESCRIPTION", "Bolt", "QUANTITY", 500, "WAREHOUSE_CODE", "WH1", "MIN_QUANTITY", 100, "REORDER_QUANTITY", 1000),
	}}
	transfers := &domain.Table{Name: "inventory_transfers_denormalized", Records: []domain.Record{
		rec("TRANSFER_DATE", "2024-04-03", "FROM_WAREHOUSE_CODE", "WH1", "TO_WAREHOUSE_CODE", "WH2", "FROM_WAREHOUSE_CAPACITY", 10000, "TO_WAREHOUSE_CAPACITY", 8000),
	}}

	changeLog := &domain.Table{Name: "audit_change_log_denormalized", Records: []domain.Record{
		rec("LOG_ID", 1, "TABLE_NAME", "EMPLOYEES", "MODIFIED_BY", "admin", "MODIFIED_AT", "2024-05-01", "RETENTION_DAYS", 365),
		rec("LOG_ID", 2, "TABLE_NAME", "ORDERS", "MODIFIED_BY", "etl", "MODIFIED_AT", "2024-05-02", "RETENTION_DAYS", 90),
	}}
	exportLog := &domain.Table{Name: "audit_export_log", Records: []domain.Record{
		rec("EXPORT_ID", 3, "EXPORTED_BY", "analyst", "ROWS", 1200),
	}}

	schema := &domain.Table{Name: "test_records", Records: []domain.Record{
		rec("OracleSchema", "HR", "Tables", "EMPLOYEES", "ColumName", "EMPLOYEE_ID", "DataType", "NUMBER", "length", 6,
			"OracleComments", "Primary key", "AI_Commnet", "", "AnalystComment", nil),
		rec("OracleSchema", "HR", "Tables", "EMPLOYEES", "ColumName", "FIRST_NAME", "DataType", "VARCHAR2", "length", 20,
			"OracleComments", nil, "AI_Commnet", "Given name", "AnalystComment", nil),
		rec("OracleSchema", "HR", "Tables", "DEPARTMENTS", "ColumName", "DEPARTMENT_ID", "DataType", "NUMBER", "length", 4),
		rec("OracleSchema", "SALES", "Tables", "ORDERS", "ColumName", "ORDER_ID", "DataType", "NUMBER", "length", 0,
			"AnalystComment", "Surrogate key"),
	}}

	return domain.NewDataset(sales, promotions, hr, transactions, budgets, invoices,
		movements, transfers, changeLog, exportLog, schema)
}

func newFixtureContextService(t *testing.T) *contextService {
	t.Helper()
	svc, err := NewContextService(defaultRegistry(t), staticSource{ds: fixtureDataset()}, nil)
	if err != nil {
		t.Fatalf("new context service: %v", err)
	}
	return svc.(*contextService)
}
