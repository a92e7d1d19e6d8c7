package query

// PageRequest describes the window and ordering a caller wants from FindAll.
// PageIndex is zero-based, matching the public wire contract.
type PageRequest struct {
	PageIndex  int
	PageSize   int
	SortField  string
	Descending bool
}

// Normalize clamps the request to sane values: negative page indexes become 0,
// a missing or oversized page size falls back to defaultSize/maxSize, and an
// empty sort field falls back to defaultSort.
func (r *PageRequest) Normalize(defaultSize, maxSize int, defaultSort string) {
	if r.PageIndex < 0 {
		r.PageIndex = 0
	}
	if r.PageSize < 1 {
		r.PageSize = defaultSize
	}
	if maxSize > 0 && r.PageSize > maxSize {
		r.PageSize = maxSize
	}
	if r.SortField == "" {
		r.SortField = defaultSort
	}
}

// Offset returns the number of records to skip for this page.
func (r PageRequest) Offset() int {
	return r.PageIndex * r.PageSize
}

// Page is one window of results plus the total count of records matching the
// spec across all pages.
type Page[T any] struct {
	Items     []T
	PageIndex int
	PageSize  int
	Total     int64
}
