package domain

// Paginated is the envelope returned by every list endpoint.
// len(Data) <= Limit and TotalPages == ceil(Total/Limit).
type Paginated[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// TotalPagesFor computes the page count for a total row count at the
// given page size.
func TotalPagesFor(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
