package pagination

const (
	// DefaultSize is the standard page size when a size is not provided.
	DefaultSize = 20
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds zero-based page inputs from controllers or services.
type Params struct {
	Page int
	Size int
}

// Normalize enforces a non-negative page and the default and maximum sizes.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	p.Size = NormalizeSize(p.Size)
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// NormalizeSize enforces the configured default and maximum sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// Page is the paged response envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage assembles a page from its content and the total row count.
func NewPage[T any](content []T, params Params, total int64) Page[T] {
	params = params.Normalize()
	if content == nil {
		content = []T{}
	}
	totalPages := int((total + int64(params.Size) - 1) / int64(params.Size))
	return Page[T]{
		Content:       content,
		Page:          params.Page,
		Size:          params.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         params.Page == 0,
		Last:          params.Page >= totalPages-1,
	}
}
