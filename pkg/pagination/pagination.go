package pagination

// Offset pagination for the catalog and list endpoints. Clients send
// skip/limit; responses carry derived page metadata.

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Skip  int
	Limit int
}

// Page describes the metadata returned alongside a page of results.
type Page struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Normalize clamps skip and limit into their allowed ranges.
func (p Params) Normalize() Params {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// PageFor derives the page metadata for a total row count.
func PageFor(params Params, total int64) Page {
	params = params.Normalize()
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return Page{
		Total:       total,
		CurrentPage: params.Skip/params.Limit + 1,
		TotalPages:  totalPages,
		HasNext:     int64(params.Skip+params.Limit) < total,
		HasPrevious: params.Skip > 0,
	}
}
