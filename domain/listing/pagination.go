package listing

// Pagination describes the window a page of results was cut from.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination derives the pagination block for a spec's window and the
// total match count reported by the store.
func NewPagination(spec *Spec, total int64) Pagination {
	return Pagination{
		Page:       spec.Page,
		PageSize:   spec.PageSize,
		TotalItems: total,
		TotalPages: TotalPages(total, spec.PageSize),
	}
}
