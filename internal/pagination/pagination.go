package pagination

// Ordering directions for paged listings, by record id.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// DefaultLimit is applied when a listing request carries no limit.
const DefaultLimit = 20

// PageRequest describes one page of an ordered listing. Cursor resumes
// after a previously returned record id and takes precedence over Offset.
type PageRequest struct {
	Limit  int
	Offset *int
	Cursor string
	Order  string
}

// Page is one page of results plus the tokens and offsets needed to move
// forward or back.
type Page[T any] struct {
	Count              int     `json:"count"`
	Total              int64   `json:"total"`
	NextPageToken      *string `json:"nextPageToken"`
	PreviousPageToken  string  `json:"previousPageToken,omitempty"`
	NextPageOffset     *int    `json:"nextPageOffset,omitempty"`
	PreviousPageOffset *int    `json:"previousPageOffset,omitempty"`
	HasNextPage        bool    `json:"hasNextPage"`
	Data               []T     `json:"data"`
}

// Build computes page metadata from the fetched items, the collection
// total, and the request that produced them. idOf extracts the ordering
// key (the record id) for the next-page token; an empty page yields a nil
// token.
func Build[T any](items []T, total int64, req PageRequest, idOf func(T) string) Page[T] {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}

	count := len(items)

	var nextToken *string
	if count > 0 {
		last := idOf(items[count-1])
		nextToken = &last
	}

	offset := 0
	if req.Offset != nil {
		offset = *req.Offset
	}

	hasNext := int64(offset+count) < total
	var nextOffset *int
	if hasNext {
		v := offset + req.Limit
		nextOffset = &v
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Count:              count,
		Total:              total,
		NextPageToken:      nextToken,
		PreviousPageToken:  req.Cursor,
		NextPageOffset:     nextOffset,
		PreviousPageOffset: req.Offset,
		HasNextPage:        hasNext,
		Data:               items,
	}
}
