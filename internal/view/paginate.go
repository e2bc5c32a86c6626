package view

// DefaultPageSize is the page size of the product and execution tables
const DefaultPageSize = 20

// Page is one page of a filtered collection
type Page[T any] struct {
	Items []T
	// Number is the 1-based page number
	Number     int
	Size       int
	StartIndex int
	// EndIndex is StartIndex+Size. It may exceed TotalItems on the last page.
	EndIndex   int
	TotalItems int
	TotalPages int
}

// HasPrev reports whether a previous page exists
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Paginate slices items for a 1-based page. Page numbers below 1 are treated
// as 1 and non-positive sizes as DefaultPageSize. A page past the end is empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	start := (page - 1) * size
	end := start + size

	lo, hi := min(start, total), min(end, total)
	return Page[T]{
		Items:      items[lo:hi:hi],
		Number:     page,
		Size:       size,
		StartIndex: start,
		EndIndex:   end,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
	}
}
