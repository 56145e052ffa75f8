package persistence

import (
	"slices"
	"strings"
	"unicode"

	"gorm.io/gorm/clause"
)

// alwaysSortable is accepted as OrderBy for every table
var alwaysSortable = []string{"id", "created_at", "updated_at"}

// sortOrder resolves a client supplied OrderBy/OrderDir pair. Fields are
// camelCase or snake_case; anything outside allowed falls back to def, and
// any direction other than "asc" sorts descending.
func sortOrder(orderBy, orderDir string, allowed []string, def string) clause.OrderByColumn {
	column := toSnakeCase(orderBy)
	if column == "" || !slices.Contains(allowed, column) {
		column = def
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   !strings.EqualFold(strings.TrimSpace(orderDir), "asc"),
	}
}

// toSnakeCase converts a camelCase query value ("createdAt") to a column name
func toSnakeCase(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Sortable columns per table, on top of alwaysSortable
var (
	BankSortFields            = []string{"name", "code", "balance", "currency", "status"}
	BankTransactionSortFields = []string{"transaction_date", "amount", "type", "status"}
	InvoiceSortFields         = []string{"invoice_number", "client_name", "issue_date", "due_date", "total", "status"}
	EquipmentSortFields       = []string{"name", "serial_number", "category", "location", "purchase_date", "purchase_price", "status"}
	VehicleSortFields         = []string{"plate_number", "brand", "year", "mileage", "status", "insurance_expiry"}
	AssignmentSortFields      = []string{"assigned_at", "expected_return", "returned_at", "status"}
	EmployeeSortFields        = []string{"first_name", "last_name", "email", "department", "position", "hire_date", "status"}
	LicenseSortFields         = []string{"software_name", "vendor", "expiry_date", "seats", "cost", "status"}
	ContractSortFields        = []string{"contract_number", "title", "party_name", "start_date", "end_date", "value", "status"}
	DocumentSortFields        = []string{"title", "category", "file_name", "content_type", "size"}
	AlertSortFields           = []string{"title", "severity", "status", "type", "due_date"}
	UserSortFields            = []string{"email", "first_name", "last_name", "role", "last_login_at"}
)
