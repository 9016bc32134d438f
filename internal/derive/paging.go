package derive

// PageSizes are the page lengths the console UI offers.
var PageSizes = []int{10, 25, 50}

// Page returns the pageIndex-th fixed-size slice of items. A page index past
// the end yields an empty slice rather than an error; callers are expected
// to reset the index to 0 themselves when the page size changes, Page does
// not clamp for them.
func Page[T any](items []T, pageIndex, pageSize int) []T {
	if pageIndex < 0 || pageSize <= 0 {
		return []T{}
	}
	start := pageIndex * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
