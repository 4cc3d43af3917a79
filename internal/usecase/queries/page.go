package queries

const (
	DefaultMemberPageSize  = 12
	DefaultBookingPageSize = 6
	MaxPageSize            = 200
)

// PageRequest is 1-based. Zero values select the first page and the
// caller's default size.
type PageRequest struct {
	Page     int
	PageSize int
}

type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p PageRequest) normalize(defaultSize int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// paginate slices items for the requested page. Pages past the end are
// empty rather than an error.
func paginate[T any](items []T, req PageRequest, defaultSize int) ([]T, PageInfo) {
	req = req.normalize(defaultSize)
	total := len(items)
	info := PageInfo{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: (total + req.PageSize - 1) / req.PageSize,
	}

	// compared in pages so a huge page number cannot overflow the offset
	if req.Page > info.TotalPages {
		return []T{}, info
	}
	start := (req.Page - 1) * req.PageSize
	end := min(start+req.PageSize, total)
	return items[start:end], info
}
