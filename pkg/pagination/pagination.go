package pagination

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Page describes a normalized listing window.
type Page struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Skip  int   `json:"-"`
	Total int64 `json:"total"`
}

// Normalize clamps page/size into valid ranges and derives the row
// offset. page < 1 becomes 1; size outside [1, MaxSize] becomes
// DefaultSize.
func Normalize(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxSize {
		size = DefaultSize
	}
	return page, size, (page - 1) * size
}
