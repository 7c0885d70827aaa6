package catalog

import (
	"strconv"

	"product-catalog/models"
)

// DefaultPageSize is the number of cards shown per page
const DefaultPageSize = 3

// SelectItemsForPage returns the products displayed on the given page.
// Every page holds pageSize items; the last page is clipped and pages
// past the end are empty.
func SelectItemsForPage(page, pageSize int, allProducts []models.Product) []models.Product {
	return SelectPage(models.PageRequest{PageNumber: page, PageSize: pageSize}, allProducts)
}

// SelectPage returns the products displayed for req.
// The feed is laid out after req.LeadSlots static cards, so page 1 yields
// PageSize-LeadSlots products and later pages are shifted back by LeadSlots.
// The returned slice aliases allProducts and must not be modified.
func SelectPage(req models.PageRequest, allProducts []models.Product) []models.Product {
	if req.PageNumber < 1 || req.PageSize < 1 {
		return nil
	}
	start, end := PageBounds(req, len(allProducts))
	if start >= end {
		return []models.Product{}
	}
	return allProducts[start:end:end]
}

// PageBounds returns the feed positions [start, end) shown for req out of
// total products. start == end when the page is empty.
func PageBounds(req models.PageRequest, total int) (start, end int) {
	if req.PageNumber < 1 || req.PageSize < 1 {
		return 0, 0
	}
	lead := clampLead(req.LeadSlots, req.PageSize)

	start = (req.PageNumber-1)*req.PageSize - lead
	end = req.PageNumber*req.PageSize - lead
	if start < 0 {
		start = 0
	}
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return start, end
}

// TotalPages returns the number of pages needed for total products
func TotalPages(total, pageSize, leadSlots int) int {
	if pageSize < 1 {
		return 0
	}
	n := total + clampLead(leadSlots, pageSize)
	return (n + pageSize - 1) / pageSize
}

func clampLead(lead, pageSize int) int {
	if lead < 0 {
		return 0
	}
	if lead > pageSize {
		return pageSize
	}
	return lead
}

// Pagination slot positions.
const (
	slotFirst = iota
	slotLeadingEllipsis
	slotPrevious
	slotCurrent
	slotNext
	slotTrailingEllipsis
	slotLast
)

// visibilityRule hides slots when match reports true for the current page
type visibilityRule struct {
	match  func(page, totalPages int) bool
	hidden []int
}

// visibilityRules are evaluated in order; the first match wins.
var visibilityRules = []visibilityRule{
	{match: func(p, _ int) bool { return p == 1 }, hidden: []int{slotFirst, slotLeadingEllipsis, slotPrevious}},
	{match: func(p, _ int) bool { return p == 2 }, hidden: []int{slotFirst, slotLeadingEllipsis}},
	{match: func(p, _ int) bool { return p == 3 }, hidden: []int{slotLeadingEllipsis}},
	{match: func(p, n int) bool { return p == n-2 }, hidden: []int{slotTrailingEllipsis}},
	{match: func(p, n int) bool { return p == n-1 }, hidden: []int{slotNext, slotTrailingEllipsis}},
	{match: func(p, n int) bool { return p == n }, hidden: []int{slotNext, slotTrailingEllipsis, slotLast}},
}

// hiddenSlots returns the slot positions hidden for page
func hiddenSlots(page, totalPages int) []int {
	for _, rule := range visibilityRules {
		if rule.match(page, totalPages) {
			return rule.hidden
		}
	}
	return nil
}

// BuildPaginationWindow computes the seven-slot pagination control for page
func BuildPaginationWindow(page, totalPages int) models.PaginationWindow {
	slots := []models.PaginationSlot{
		{Kind: models.SlotFirst, Label: "1", Page: 1},
		{Kind: models.SlotEllipsis, Label: "..."},
		{Kind: models.SlotPrevious, Label: strconv.Itoa(page - 1), Page: page - 1},
		{Kind: models.SlotCurrent, Label: strconv.Itoa(page), Page: page, IsCurrent: true},
		{Kind: models.SlotNext, Label: strconv.Itoa(page + 1), Page: page + 1},
		{Kind: models.SlotEllipsis, Label: "..."},
		{Kind: models.SlotLast, Label: strconv.Itoa(totalPages), Page: totalPages},
	}
	for _, idx := range hiddenSlots(page, totalPages) {
		slots[idx].Hidden = true
	}

	return models.PaginationWindow{
		Page:       page,
		TotalPages: totalPages,
		Slots:      slots,
	}
}
