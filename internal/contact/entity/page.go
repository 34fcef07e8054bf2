package entity

import "strings"

const (
	DefaultPage int32 = 0
	DefaultSize int32 = 10
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection returns SortDesc only for a case-insensitive "desc";
// anything else, padded values included, is ascending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(s, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// sortColumns maps accepted sort names to storage columns.
var sortColumns = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"firstName":  "first_name",
	"last_name":  "last_name",
	"lastName":   "last_name",
	"phone":      "phone",
	"address":    "address",
}

// ParseSortField resolves a client supplied sort name to a column.
func ParseSortField(s string) (string, bool) {
	col, ok := sortColumns[s]
	return col, ok
}

// PageRequest is a zero-based page selection. An empty SortBy keeps the
// storage natural order (ascending id).
type PageRequest struct {
	Page      int32 `validate:"gte=0"`
	Size      int32 `validate:"gte=1"`
	SortBy    string
	Direction SortDirection
}

func (p PageRequest) Offset() uint64 {
	return uint64(p.Page) * uint64(p.Size)
}

// TotalPages rounds up; zero size yields zero.
func TotalPages(total int64, size int32) int64 {
	if size <= 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}
