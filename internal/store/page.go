package store

// Page size bounds applied before any query executes.
const (
	DefaultPageSize = 10
	MaxPageSize     = 20
)

// Page describes the requested slice of a list query. Construct values with
// NewPage so the bounds below are always applied; a zero Page is not valid.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes the raw page parameters: numbers below 1 become 1,
// sizes of zero or less fall back to DefaultPageSize, and sizes above
// MaxPageSize are clamped to MaxPageSize. Out-of-range values are cosmetic
// and never fail the request.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the maximum number of rows for this page.
func (p Page) Limit() int {
	return p.Size
}

// PaginationMetadata describes a filtered, paged result set. It is derived
// per query and never persisted. TotalItemCount reflects the post-filter,
// pre-pagination count.
type PaginationMetadata struct {
	TotalItemCount int `json:"totalItemCount"`
	PageSize       int `json:"pageSize"`
	CurrentPage    int `json:"currentPage"`
	TotalPageCount int `json:"totalPageCount"`
}

// NewPaginationMetadata computes the metadata for the given filtered total
// and normalized page. TotalPageCount is ceil(total/size).
func NewPaginationMetadata(totalItemCount int, page Page) PaginationMetadata {
	totalPages := 0
	if totalItemCount > 0 {
		totalPages = (totalItemCount + page.Size - 1) / page.Size
	}
	return PaginationMetadata{
		TotalItemCount: totalItemCount,
		PageSize:       page.Size,
		CurrentPage:    page.Number,
		TotalPageCount: totalPages,
	}
}
