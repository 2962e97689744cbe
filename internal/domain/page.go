package domain

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (s SortOrder) Valid() bool {
	switch s {
	case SortAsc, SortDesc:
		return true
	default:
		return false
	}
}

// PageCursor describes where a cursor-paginated listing left off.
// An empty NextCursor always means the listing is exhausted.
type PageCursor struct {
	HasMore    bool
	NextCursor string
	Limit      int
	SortOrder  SortOrder
}

// Normalize enforces the cursor invariant: no next cursor, no more pages.
func (c PageCursor) Normalize() PageCursor {
	if c.NextCursor == "" {
		c.HasMore = false
	}
	return c
}

// PageRequest is the client side of a paginated fetch. Cursor is empty for
// the first page.
type PageRequest struct {
	Limit     int
	Cursor    string
	SortOrder SortOrder
}
