// Package pagination converts page/limit query parameters into store offsets
// and shapes the pagination metadata returned with every list response.
package pagination

// DefaultLimit applies when the client sends no limit parameter.
const DefaultLimit = 10

// MaxLimit caps a single page.
const MaxLimit = 100

// Params are the store-level window for one page.
type Params struct {
	Limit  int
	Offset int
}

// Meta is the pagination block attached to list responses.
type Meta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	FirstPage   int   `json:"first_page"`
	LastPage    int   `json:"last_page"`
}

// Normalize clamps page and limit to sane values.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// ParamsFor computes the limit/offset window for a page.
func ParamsFor(page, limit int) Params {
	page, limit = Normalize(page, limit)
	return Params{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// MetaFor computes pagination metadata for a total row count.
func MetaFor(total int64, page, limit int) Meta {
	page, limit = Normalize(page, limit)
	lastPage := int((total + int64(limit) - 1) / int64(limit))
	if lastPage < 1 {
		lastPage = 1
	}
	return Meta{
		Total:       total,
		CurrentPage: page,
		PerPage:     limit,
		FirstPage:   1,
		LastPage:    lastPage,
	}
}
