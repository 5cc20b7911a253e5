package pagination

// Pagination is the offset-style paging every list endpoint accepts.
type Pagination struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=10" validate:"gte=1,lte=100"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

func (p Pagination) Limit() int {
	return p.Normalize().PageSize
}

// PageInfo is attached to list responses.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	HasMore    bool  `json:"has_more"`
}

func BuildPageInfo(p Pagination, total int64) PageInfo {
	p = p.Normalize()
	return PageInfo{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: total,
		HasMore:    int64(p.Page*p.PageSize) < total,
	}
}
