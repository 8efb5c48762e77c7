// Package pagination slices an ordered post sequence into fixed-size
// pages. Page numbers are forgiving: anything unparseable becomes page 1
// and anything past the end clamps to the last page.
package pagination

import (
	"strconv"

	"inkwell/internal/models"
)

const DefaultPageSize = 10

// Sequence is an ordered, restartable source of posts. Count and Slice
// may be called repeatedly; both must observe the same ordering.
type Sequence interface {
	Count() (int64, error)
	Slice(offset, limit int) ([]models.Post, error)
}

// Page is one bounded slice of a feed plus navigation metadata.
type Page struct {
	Posts      []models.Post
	Number     int
	Size       int
	TotalPages int
	TotalItems int64
	HasPrev    bool
	HasNext    bool
	PrevNumber int
	NextNumber int
}

// ParseNumber reads a page number from a query parameter. Absent or
// non-numeric values default to 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate slices the sequence into the requested page. An empty
// sequence yields a single empty page; out-of-range numbers clamp
// rather than error, mirroring the lenient paginator contract.
func Paginate(seq Sequence, number, size int) (*Page, error) {
	if size < 1 {
		size = DefaultPageSize
	}
	if number < 1 {
		number = 1
	}

	total, err := seq.Count()
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if number > totalPages {
		number = totalPages
	}

	posts, err := seq.Slice((number-1)*size, size)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Posts:      posts,
		Number:     number,
		Size:       size,
		TotalPages: totalPages,
		TotalItems: total,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
	if page.HasPrev {
		page.PrevNumber = number - 1
	}
	if page.HasNext {
		page.NextNumber = number + 1
	}
	return page, nil
}
