package jobsearch

import (
	"errors"
	"fmt"
)

// WindowSize is the maximum number of page links shown at once.
const WindowSize = 5

var ErrPageOutOfRange = errors.New("page out of range")

// Paginator tracks a 1-indexed current page over a result total.
type Paginator struct {
	current int
	total   int
	size    int
}

func NewPaginator(size int) *Paginator {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Paginator{current: 1, size: size}
}

func (p *Paginator) Current() int { return p.current }
func (p *Paginator) Total() int   { return p.total }
func (p *Paginator) Size() int    { return p.size }

func (p *Paginator) Page() Page {
	return Page{Number: p.current, Size: p.size}
}

func (p *Paginator) TotalPages() int {
	return TotalPages(p.total, p.size)
}

// SetTotal records a new result total and pulls the current page back
// inside the last page.
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if last := p.TotalPages(); p.current > last {
		p.current = max(last, 1)
	}
}

// SetSize changes the page size and returns to the first page.
func (p *Paginator) SetSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	p.size = size
	p.current = 1
}

func (p *Paginator) Reset() {
	p.current = 1
}

// Prev moves back one page, floored at 1.
func (p *Paginator) Prev() int {
	if p.current > 1 {
		p.current--
	}
	return p.current
}

// Next moves forward one page, ceilinged at the last page.
func (p *Paginator) Next() int {
	if p.current < p.TotalPages() {
		p.current++
	}
	return p.current
}

// GoTo jumps to any page in [1, TotalPages].
func (p *Paginator) GoTo(page int) error {
	last := p.TotalPages()
	if page < 1 || page > last {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, page, last)
	}
	p.current = page
	return nil
}

func (p *Paginator) HasPrev() bool { return p.current > 1 }
func (p *Paginator) HasNext() bool { return p.current < p.TotalPages() }

// Window returns the page links to display around the current page.
func (p *Paginator) Window() []int {
	return PageWindow(p.current, p.TotalPages())
}

func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageWindow returns at most WindowSize page numbers: all pages when they
// fit, the first five near the start, the last five near the end, and
// otherwise current-2..current+2.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	var start int
	switch {
	case totalPages <= WindowSize:
		start = 1
	case current <= 3:
		start = 1
	case current >= totalPages-2:
		start = totalPages - WindowSize + 1
	default:
		start = current - 2
	}
	end := min(start+WindowSize-1, totalPages)

	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
