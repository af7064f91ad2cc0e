package model

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// NormalizePageLimit coerces possibly-absent or out-of-range query values
// into usable ones. Non-positive values fall back to the defaults; limit is
// clamped so a single page can never grow unbounded.
func NormalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Paginate turns (page, limit, total) into the query offset and the total
// page count. A page past the end yields an empty result, not an error, so
// no clamping happens here beyond keeping the offset non-negative.
func Paginate(page, limit, total int) (offset, totalPages int) {
	if page < 1 {
		page = 1
	}
	offset = (page - 1) * limit

	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return offset, totalPages
}
