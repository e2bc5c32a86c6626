// Package view holds the presentation state of the dashboard lists: filters,
// sorting, pagination and product form validation. Everything here is pure and
// works on records that were already fetched and mapped.
package view

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

// Values of ProductFilter.Enabled
const (
	EnabledAny      = ""
	EnabledOnly     = "enabled"
	EnabledDisabled = "disabled"
)

// ProductFilter narrows the product table. Zero fields match everything.
type ProductFilter struct {
	// Search matches name or vendor case-insensitively, or the decimal id
	Search string
	// Status is a case-insensitive substring of the last run status
	Status string
	// Enabled is EnabledAny, EnabledOnly or EnabledDisabled
	Enabled string
	// Vendor must equal the product vendor exactly
	Vendor string
}

// IsZero reports whether the filter matches everything
func (f ProductFilter) IsZero() bool {
	return f == ProductFilter{}
}

// Match reports whether p satisfies every criterion of f
func (f ProductFilter) Match(p domain.Product) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Metadata.Vendor), s) &&
			!strings.Contains(strconv.Itoa(p.ID), s) {
			return false
		}
	}
	if want := strings.ToLower(strings.TrimSpace(f.Status)); want != "" {
		have := strings.ToLower(strings.TrimSpace(p.Metadata.LastRanStatus))
		if !strings.Contains(have, want) {
			return false
		}
	}
	switch f.Enabled {
	case EnabledOnly:
		if !p.Metadata.Enabled {
			return false
		}
	case EnabledDisabled:
		if p.Metadata.Enabled {
			return false
		}
	}
	if f.Vendor != "" && p.Metadata.Vendor != f.Vendor {
		return false
	}
	return true
}

// FilterProducts returns the products matching f in their original order
func FilterProducts(products []domain.Product, f ProductFilter) []domain.Product {
	return filter(products, f.Match)
}

// Vendors returns the distinct non-empty vendors, sorted
func Vendors(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		v := p.Metadata.Vendor
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ExecutionFilter narrows the execution history
type ExecutionFilter struct {
	// Status matches the normalized status, so "failed" also matches "error"
	Status string
	// ProductName is a case-insensitive substring of the product name
	ProductName string
	// From and To bound StartedAt inclusively. Zero values are open.
	From time.Time
	To   time.Time
}

// Match reports whether e satisfies every criterion of f
func (f ExecutionFilter) Match(e domain.Execution) bool {
	if f.Status != "" && e.Status != domain.NormalizeStatus(f.Status) {
		return false
	}
	if f.ProductName != "" && !strings.Contains(strings.ToLower(e.ProductName), strings.ToLower(f.ProductName)) {
		return false
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		started := e.StartedTime()
		if started.IsZero() {
			return false
		}
		if !f.From.IsZero() && started.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && started.After(f.To) {
			return false
		}
	}
	return true
}

// FilterExecutions returns the executions matching f in their original order
func FilterExecutions(executions []domain.Execution, f ExecutionFilter) []domain.Execution {
	return filter(executions, f.Match)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
