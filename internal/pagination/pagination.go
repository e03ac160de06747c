// Package pagination computes the offset/total-pages window shared by the
// category and post listings.
package pagination

// Window is the computed slice of a listing.
type Window struct {
	Offset     int
	Limit      int
	TotalPages int
}

// Paginate computes the window for a 1-based page over totalCount rows.
// A limit of zero (or negative) means "no pagination": offset 0, every row,
// a single page. Callers must supply page >= 1; this is a documented caller
// contract, not a runtime guard.
func Paginate(totalCount int64, limit, page int) Window {
	if limit <= 0 {
		return Window{Offset: 0, Limit: 0, TotalPages: 1}
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	return Window{
		Offset:     (page - 1) * limit,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
