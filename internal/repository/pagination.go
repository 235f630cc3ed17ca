package repository

// Page represents a simple limit/offset window for listing operations.
// I keep it intentionally small; advanced filtering belongs to higher layers.
type Page struct {
	Limit  int
	Offset int
}

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Paginate cuts a window out of an in-memory slice. The page is expected to be normalized.
func Paginate[T any](items []T, p Page) PageResult[T] {
	total := len(items)
	start := min(max(p.Offset, 0), total)
	end := total
	if p.Limit > 0 {
		end = min(start+p.Limit, total)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return PageResult[T]{Items: out, Total: total}
}
