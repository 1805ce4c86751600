package portfolio

// PageMeta describes how a page relates to the full result set.
type PageMeta struct {
	Total      int  `json:"total"`
	Returned   int  `json:"returned"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
	HasMore    bool `json:"hasMore"`
	TotalPages int  `json:"totalPages"`
}

// Paginate slices items to [offset, offset+limit). A negative offset is
// clamped to zero and a non-positive limit means no limit. Out of range
// offsets yield an empty page.
func Paginate[T any](items []T, offset, limit int) ([]T, PageMeta) {
	total := len(items)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = total
	}

	// bounds are computed by subtraction so offsets and limits near
	// math.MaxInt cannot overflow
	start := min(offset, total)
	end := start + min(limit, total-start)
	page := make([]T, end-start)
	copy(page, items[start:end])

	divisor := limit
	if divisor == 0 {
		divisor = 1
	}
	pages := total / divisor
	if total%divisor != 0 {
		pages++
	}

	return page, PageMeta{
		Total:      total,
		Returned:   len(page),
		Offset:     offset,
		Limit:      limit,
		HasMore:    offset < total && limit < total-offset,
		TotalPages: pages,
	}
}
