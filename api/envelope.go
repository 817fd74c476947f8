package api

// Response is the standard wrapper every endpoint returns: the payload under
// "data", plus an optional human-readable message.
type Response[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Pagination is the canonical paging block. List endpoints always nest it
// under "pagination" next to "data"; nothing reads top-level paging fields.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// HasMore reports whether pages remain after the current one.
func (p Pagination) HasMore() bool {
	return p.CurrentPage < p.LastPage
}

// Page is the payload of every list endpoint.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
