package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone":        true,
	"credit_limit": true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"phone":         true,
	"business_type": true,
}

// OrderSortFields contains allowed sort fields for processing orders
var OrderSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"order_number":    true,
	"customer_name":   true,
	"order_date":      true,
	"status":          true,
	"total_amount":    true,
	"received_amount": true,
}

// IncomeSortFields contains allowed sort fields for income records
var IncomeSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"income_date":   true,
	"amount":        true,
	"bank_type":     true,
	"customer_name": true,
}

// ExpenseSortFields contains allowed sort fields for expense records
var ExpenseSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"expense_date": true,
	"amount":       true,
	"bank_type":    true,
	"category":     true,
}

// BankTransactionSortFields contains allowed sort fields for statement lines
var BankTransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"transaction_date": true,
	"amount":           true,
	"bank_type":        true,
	"direction":        true,
	"counterparty":     true,
}
