package view

const (
	paginationMargin = 1
	paginationRange  = 5
)

// PageItem is one control of the pagination bar.
type PageItem struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// PageWindow lays out the pagination bar: the first and last page, a window
// of five pages around current and an ellipsis for every gap. It returns nil
// when there is a single page or none.
func PageWindow(current, total int) []PageItem {
	if total <= 1 {
		return nil
	}
	current = min(max(current, 1), total)

	start := current - paginationRange/2
	end := start + paginationRange - 1
	if start < 1 {
		start, end = 1, min(paginationRange, total)
	}
	if end > total {
		start, end = max(total-paginationRange+1, 1), total
	}

	items := make([]PageItem, 0, paginationRange+2*paginationMargin+2)
	for p := 1; p <= total; p++ {
		inMargin := p <= paginationMargin || p > total-paginationMargin
		if inMargin || (p >= start && p <= end) {
			items = append(items, PageItem{Page: p, Current: p == current})
			continue
		}
		if len(items) == 0 || !items[len(items)-1].Ellipsis {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	return items
}
