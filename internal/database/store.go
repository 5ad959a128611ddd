package database

import (
	"context"
	"regexp"

	"github.com/RouqX7/AthleteConnect/internal/pagination"
	"github.com/RouqX7/AthleteConnect/internal/utils"
)

// Store is the per-collection adapter against the external document store.
// One instance serves one entity kind; every provider implements the same
// contract.
type Store[T any] interface {
	// Add upserts the record under id and returns the id. The id must be
	// non-empty; records are overwritten wholesale when it already exists.
	Add(ctx context.Context, id string, record *T) (string, error)

	// Get returns the record stored at id, or a not-found error.
	Get(ctx context.Context, id string) (*T, error)

	// GetAll returns every record in the collection (full scan).
	GetAll(ctx context.Context) ([]*T, error)

	// GetByField returns all records whose field equals value. Equality
	// only; no range or compound filters.
	GetByField(ctx context.Context, field, value string) ([]*T, error)

	// Update merges the supplied fields into the record at id and fails
	// when the id does not exist.
	Update(ctx context.Context, id string, partial map[string]any) error

	// Delete removes the record at id. Deleting an absent id is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// PagedStore adds the ordered page listing used by profile listing.
type PagedStore[T any] interface {
	Store[T]

	// ListPage returns one page ordered by record id plus the collection
	// total.
	ListPage(ctx context.Context, req pagination.PageRequest) ([]*T, int64, error)
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

// checkFieldName guards field names that reach query text. Field filters
// come from the HTTP surface, so anything beyond a plain identifier path
// is rejected before it touches the store.
func checkFieldName(field string) error {
	if !fieldNamePattern.MatchString(field) {
		return utils.NewInvalidInputError("invalid field name: " + field)
	}
	return nil
}
