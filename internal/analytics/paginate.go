package analytics

// Pagination bounds shared by every paginated view.
const (
	MinPage      = 1
	MinLimit     = 1
	MaxLimit     = 100
	DefaultPage  = 1
	DefaultLimit = 50
)

// ValidatePage checks pagination parameters before any view computation
// runs.
func ValidatePage(page, limit int) error {
	if page < MinPage {
		return pageParamError("page", page, "must be at least 1")
	}
	if limit < MinLimit || limit > MaxLimit {
		return pageParamError("limit", limit, "must be between 1 and 100")
	}
	return nil
}

// Paginate returns items[(page-1)*limit : (page-1)*limit+limit], clamped to
// the slice bounds. Pages past the end yield an empty slice, never an
// error.
func Paginate[T any](items []T, page, limit int) []T {
	if page < MinPage || limit < MinLimit {
		return []T{}
	}
	// Reject past-the-end pages before computing start: (page-1)*limit
	// overflows for huge page values.
	if page > len(items)/limit+1 {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
