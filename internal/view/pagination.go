package view

import (
	"fmt"
	"strconv"
)

// PageButton is one element of the pagination control: either a numbered
// page button or an ellipsis placeholder.
type PageButton struct {
	Page     int
	Ellipsis bool
	Active   bool
}

// Pagination is the full pagination control for the current listing.
type Pagination struct {
	Buttons    []PageButton
	Current    int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// windowDelta is how many pages the sliding window extends on each side of
// the current page.
const windowDelta = 2

// TotalPages computes the page count for a result total and page limit.
func TotalPages(totalCount, pageLimit int) int {
	if pageLimit <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + pageLimit - 1) / pageLimit
}

// PageWindow produces the sliding window of page buttons: every page within
// windowDelta of the current page, always including the first and last page.
// A gap of exactly one skipped page is filled in; wider gaps collapse to a
// single ellipsis.
func PageWindow(current, totalPages int) []PageButton {
	var pages []int
	for i := 1; i <= totalPages; i++ {
		if i == 1 || i == totalPages || (i >= current-windowDelta && i <= current+windowDelta) {
			pages = append(pages, i)
		}
	}

	var buttons []PageButton
	prev := 0
	for _, p := range pages {
		if prev > 0 {
			switch {
			case p-prev == 2:
				buttons = append(buttons, PageButton{Page: prev + 1, Active: prev+1 == current})
			case p-prev > 2:
				buttons = append(buttons, PageButton{Ellipsis: true})
			}
		}
		buttons = append(buttons, PageButton{Page: p, Active: p == current})
		prev = p
	}
	return buttons
}

// NewPagination builds the pagination control. A listing that fits on one
// page gets no control at all, mirroring the hidden pagination bar.
func NewPagination(current, totalCount, pageLimit int) Pagination {
	totalPages := TotalPages(totalCount, pageLimit)
	if totalPages <= 1 {
		return Pagination{}
	}
	return Pagination{
		Buttons:    PageWindow(current, totalPages),
		Current:    current,
		TotalPages: totalPages,
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
	}
}

// ClampJump validates a page-jump input against the page range. Out-of-range
// or non-numeric input returns an error carrying the user-facing message; no
// navigation happens in that case.
func ClampJump(input string, totalPages int) (int, error) {
	page, err := strconv.Atoi(input)
	if err != nil || page < 1 || page > totalPages {
		return 0, fmt.Errorf("please enter a valid page number between 1 and %d", totalPages)
	}
	return page, nil
}
