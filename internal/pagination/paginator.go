// Package pagination slices ordered gorm queries into fixed-size pages.
package pagination

import (
	"strconv"

	"gorm.io/gorm"
)

type Page struct {
	Number   int
	PerPage  int
	Total    int64
	NumPages int
}

// New builds page metadata. A number past the last page becomes NumPages+1,
// so such requests yield an empty slice instead of an error.
func New(number, perPage int, total int64) Page {
	if perPage <= 0 {
		perPage = 1
	}
	if number <= 0 {
		number = 1
	}
	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages == 0 {
		numPages = 1
	}
	if number > numPages+1 {
		number = numPages + 1
	}
	return Page{Number: number, PerPage: perPage, Total: total, NumPages: numPages}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Len is the number of items this page holds: min(P, max(0, N-(k-1)*P)).
func (p Page) Len() int {
	remaining := p.Total - int64(p.Offset())
	if remaining <= 0 {
		return 0
	}
	if remaining > int64(p.PerPage) {
		return p.PerPage
	}
	return int(remaining)
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

func (p Page) PreviousNumber() int {
	return p.Number - 1
}

// Range lists page numbers for navigation links.
func (p Page) Range() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// ParseNumber reads a ?page= value; anything but a positive integer means 1.
func ParseNumber(value string) int {
	if value == "" {
		return 1
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 1
	}
	return parsed
}

// Paginate counts the rows matched by query and returns the page metadata with
// query narrowed to that page. query must carry its Model and filters but no
// ordering or preloads; the caller adds those before Find.
func Paginate(query *gorm.DB, number, perPage int) (Page, *gorm.DB, error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return Page{}, nil, err
	}

	page := New(number, perPage, total)
	return page, base.Offset(page.Offset()).Limit(page.PerPage), nil
}
