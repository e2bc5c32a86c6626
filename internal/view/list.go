package view

import "github.com/hochfrequenz/automation-portal/internal/domain"

// List is the state of a filterable, paginated table. Any change to the
// filter sends the user back to page 1.
type List[T any, F comparable] struct {
	items  []T
	filter F
	match  func(T, F) bool
	order  func([]T) []T
	page   int
	size   int
}

// ProductList is the state of the product table
type ProductList = List[domain.Product, ProductFilter]

// ExecutionList is the state of the execution history table
type ExecutionList = List[domain.Execution, ExecutionFilter]

// NewProductList creates the product table state, ordered by id
func NewProductList(items []domain.Product) *ProductList {
	l := &ProductList{
		match: func(p domain.Product, f ProductFilter) bool { return f.Match(p) },
		page:  1,
		size:  DefaultPageSize,
	}
	l.SetItems(items)
	return l
}

// NewExecutionList creates the execution table state, newest first
func NewExecutionList(items []domain.Execution) *ExecutionList {
	l := &ExecutionList{
		match: func(e domain.Execution, f ExecutionFilter) bool { return f.Match(e) },
		order: SortExecutionsNewest,
		page:  1,
		size:  DefaultPageSize,
	}
	l.SetItems(items)
	return l
}

// SetItems replaces the collection after a refetch. The page is kept when it still exists.
func (l *List[T, F]) SetItems(items []T) {
	if l.order != nil {
		items = l.order(items)
	}
	l.items = items
	l.clamp()
}

// SetOrder installs an ordering applied to the collection
func (l *List[T, F]) SetOrder(order func([]T) []T) {
	l.order = order
	if order != nil {
		l.items = order(l.items)
	}
}

// Items returns the full unfiltered collection
func (l *List[T, F]) Items() []T { return l.items }

// Filter returns the active filter
func (l *List[T, F]) Filter() F { return l.filter }

// SetFilter replaces the filter and resets to page 1 if it changed
func (l *List[T, F]) SetFilter(f F) {
	if f == l.filter {
		return
	}
	l.filter = f
	l.page = 1
}

// Update applies fn to a copy of the filter, then behaves like SetFilter
func (l *List[T, F]) Update(fn func(*F)) {
	f := l.filter
	fn(&f)
	l.SetFilter(f)
}

// Filtered returns the items matching the current filter
func (l *List[T, F]) Filtered() []T {
	return filter(l.items, func(item T) bool { return l.match(item, l.filter) })
}

// Current returns the visible page
func (l *List[T, F]) Current() Page[T] {
	return Paginate(l.Filtered(), l.page, l.size)
}

// PageNumber returns the current 1-based page
func (l *List[T, F]) PageNumber() int { return l.page }

// SetPage jumps to page n, clamped to the available pages
func (l *List[T, F]) SetPage(n int) {
	l.page = n
	l.clamp()
}

// NextPage advances one page if possible
func (l *List[T, F]) NextPage() { l.SetPage(l.page + 1) }

// PrevPage goes back one page if possible
func (l *List[T, F]) PrevPage() { l.SetPage(l.page - 1) }

// SetPageSize changes the page size, keeping the page when it still exists
func (l *List[T, F]) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	l.size = size
	l.clamp()
}

func (l *List[T, F]) clamp() {
	total := Paginate(l.Filtered(), 1, l.size).TotalPages
	if l.page > total {
		l.page = total
	}
	if l.page < 1 {
		l.page = 1
	}
}
