package service

const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

// PageRequest selects a 1-based page.
type PageRequest struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
}

// Normalize fills defaults and clamps the size.
func (p PageRequest) Normalize() PageRequest {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Number - 1) * p.Size
}

// Paging describes the page that was returned.
type Paging struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	HasMore  bool  `json:"has_more"`
}

func newPaging(p PageRequest, total int64) Paging {
	return Paging{
		Page:     p.Number,
		PageSize: p.Size,
		Total:    total,
		HasMore:  int64(p.Number*p.Size) < total,
	}
}

// paginate slices an in-memory list.
func paginate[T any](items []T, p PageRequest) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
