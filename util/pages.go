package util

import (
	"sort"
)

// A PageLink is an entry of a pagination bar.
type PageLink struct {
	Number  int
	Current bool
	Gap     bool // there are omitted pages before this one
}

// NumPages returns how many pages of size perPage are required for count items. It is at least one.
func NumPages(count, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

// ClampPage restricts page to [1, numPages].
func ClampPage(page, numPages int) int {
	if page > numPages {
		page = numPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Pages returns non-consecutive page numbers from 1 to numPages.
// The distance to the current page doubles with every step, so the bar stays short.
func Pages(currentPage int, numPages int) []PageLink {

	if currentPage < 1 || numPages < 1 {
		return nil
	}

	var numbers = map[int]struct{}{
		1:           {},
		currentPage: {},
		numPages:    {},
	}

	for delta := 1; currentPage-delta > 1 || currentPage+delta < numPages; delta *= 2 {
		if currentPage-delta > 0 {
			numbers[currentPage-delta] = struct{}{}
		}
		if currentPage+delta < numPages {
			numbers[currentPage+delta] = struct{}{}
		}
	}

	var sorted = make([]int, 0, len(numbers))
	for number := range numbers {
		sorted = append(sorted, number)
	}
	sort.Ints(sorted)

	var links = make([]PageLink, len(sorted))
	for i, number := range sorted {
		links[i] = PageLink{
			Number:  number,
			Current: number == currentPage,
			Gap:     i > 0 && sorted[i-1] != number-1,
		}
	}
	return links
}
