package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/models"
)

func makeProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{Code: fmt.Sprintf("%05d", i), ProductID: fmt.Sprintf("p%d", i)}
	}
	return products
}

func codes(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Code
	}
	return out
}

func TestSelectItemsForPage(t *testing.T) {
	products := makeProducts(7)

	tests := []struct {
		name string
		page int
		want []models.Product
	}{
		{name: "first page", page: 1, want: products[0:3]},
		{name: "middle page", page: 2, want: products[3:6]},
		{name: "last page is clipped", page: 3, want: products[6:7]},
		{name: "past the end", page: 4, want: []models.Product{}},
		{name: "page zero", page: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectItemsForPage(tt.page, 3, products)
			assert.Equal(t, codes(tt.want), codes(got))
		})
	}
}

func TestSelectPageWithLeadSlot(t *testing.T) {
	products := makeProducts(7)

	page1 := SelectPage(models.PageRequest{PageNumber: 1, PageSize: 3, LeadSlots: 1}, products)
	assert.Equal(t, codes(products[0:2]), codes(page1), "page 1 leaves one slot to the lead card")

	page2 := SelectPage(models.PageRequest{PageNumber: 2, PageSize: 3, LeadSlots: 1}, products)
	assert.Equal(t, codes(products[2:5]), codes(page2))

	page3 := SelectPage(models.PageRequest{PageNumber: 3, PageSize: 3, LeadSlots: 1}, products)
	assert.Equal(t, codes(products[5:7]), codes(page3), "page 3 is clipped to the feed")
}

func TestSelectPageIsContiguousSlice(t *testing.T) {
	products := makeProducts(23)

	for _, size := range []int{1, 2, 3, 5, 10} {
		for _, lead := range []int{0, 1} {
			seen := map[string]bool{}
			for page := 1; page <= TotalPages(len(products), size, lead)+1; page++ {
				got := SelectPage(models.PageRequest{PageNumber: page, PageSize: size, LeadSlots: lead}, products)
				if len(got) == 0 {
					continue
				}
				first := indexOf(products, got[0].Code)
				require.GreaterOrEqual(t, first, 0)
				assert.Equal(t, codes(products[first:first+len(got)]), codes(got))
				for _, p := range got {
					assert.False(t, seen[p.Code], "product %s shown twice (size=%d lead=%d)", p.Code, size, lead)
					seen[p.Code] = true
				}
			}
			assert.Len(t, seen, len(products), "every product is reachable (size=%d lead=%d)", size, lead)
		}
	}
}

func indexOf(products []models.Product, code string) int {
	for i, p := range products {
		if p.Code == code {
			return i
		}
	}
	return -1
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(7, 3, 0))
	assert.Equal(t, 3, TotalPages(9, 3, 0))
	assert.Equal(t, 4, TotalPages(9, 3, 1))
	assert.Equal(t, 0, TotalPages(0, 3, 0))
	assert.Equal(t, 0, TotalPages(5, 0, 0))
}

func hiddenIndexes(w models.PaginationWindow) []int {
	var hidden []int
	for i, slot := range w.Slots {
		if slot.Hidden {
			hidden = append(hidden, i)
		}
	}
	return hidden
}

func TestBuildPaginationWindow(t *testing.T) {
	tests := []struct {
		page, total int
		hidden      []int
	}{
		{page: 1, total: 10, hidden: []int{0, 1, 2}},
		{page: 2, total: 10, hidden: []int{0, 1}},
		{page: 3, total: 10, hidden: []int{1}},
		{page: 5, total: 10, hidden: nil},
		{page: 8, total: 10, hidden: []int{5}},
		{page: 9, total: 10, hidden: []int{4, 5}},
		{page: 10, total: 10, hidden: []int{4, 5, 6}},
		{page: 3, total: 5, hidden: []int{1}},
		{page: 5, total: 5, hidden: []int{4, 5, 6}},
		// first matching rule wins when the table overlaps
		{page: 2, total: 3, hidden: []int{0, 1}},
		{page: 3, total: 3, hidden: []int{1}},
		{page: 1, total: 1, hidden: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d of %d", tt.page, tt.total), func(t *testing.T) {
			w := BuildPaginationWindow(tt.page, tt.total)
			require.Len(t, w.Slots, 7)
			assert.Equal(t, tt.hidden, hiddenIndexes(w))
		})
	}
}

func TestPaginationWindowLabels(t *testing.T) {
	w := BuildPaginationWindow(5, 10)

	labels := make([]string, len(w.Slots))
	for i, slot := range w.Slots {
		labels[i] = slot.Label
	}
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "10"}, labels)
	assert.True(t, w.Slots[3].IsCurrent)

	w = BuildPaginationWindow(1, 4)
	assert.Equal(t, []models.PaginationButton{
		{Label: "1", IsCurrent: true},
		{Label: "2"},
		{Label: "..."},
		{Label: "4"},
	}, w.VisibleButtons())
}
