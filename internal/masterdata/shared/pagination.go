package shared

// ListFilters represents standard list page filters
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	// Entity specific filters
	Category   *string
	SupplierID *int64
	LowStock   bool
}
