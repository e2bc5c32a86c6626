package view

import (
	"slices"
	"strings"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

// ProductSortKey selects the product table column to sort by
type ProductSortKey string

const (
	SortByID          ProductSortKey = "id"
	SortByName        ProductSortKey = "name"
	SortByVendor      ProductSortKey = "vendor"
	SortByLastUpdated ProductSortKey = "updated"
)

// SortProducts returns a sorted copy. Ties keep their input order.
func SortProducts(products []domain.Product, key ProductSortKey, desc bool) []domain.Product {
	out := slices.Clone(products)
	cmp := productCompare(key)
	slices.SortStableFunc(out, func(a, b domain.Product) int {
		if desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func productCompare(key ProductSortKey) func(a, b domain.Product) int {
	switch key {
	case SortByName:
		return func(a, b domain.Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByVendor:
		return func(a, b domain.Product) int {
			return strings.Compare(strings.ToLower(a.Metadata.Vendor), strings.ToLower(b.Metadata.Vendor))
		}
	case SortByLastUpdated:
		return func(a, b domain.Product) int {
			return a.LastUpdatedTime().Compare(b.LastUpdatedTime())
		}
	default:
		return func(a, b domain.Product) int { return a.ID - b.ID }
	}
}

// SortExecutionsNewest returns a copy ordered by start time, newest first.
// Executions without a parseable start time go last.
func SortExecutionsNewest(executions []domain.Execution) []domain.Execution {
	out := slices.Clone(executions)
	slices.SortStableFunc(out, func(a, b domain.Execution) int {
		return b.StartedTime().Compare(a.StartedTime())
	})
	return out
}
