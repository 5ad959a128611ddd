package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/RouqX7/AthleteConnect/internal/pagination"
	"github.com/RouqX7/AthleteConnect/internal/utils"
)

// SurrealDB is the alternate document-store provider, selected with
// DB_PROVIDER=surrealdb.
type SurrealDB struct {
	db *surrealdb.DB
}

type SurrealConfig struct {
	URL       string
	Namespace string
	Database  string
	User      string
	Pass      string
}

func NewSurrealDB(cfg SurrealConfig) (*SurrealDB, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}
	if _, err := db.Signin(map[string]any{"user": cfg.User, "pass": cfg.Pass}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to select SurrealDB namespace: %w", err)
	}
	return &SurrealDB{db: db}, nil
}

func (s *SurrealDB) Close() {
	s.db.Close()
}

// SurrealCollection adapts one Surreal table to the Store contract. The
// entity id becomes the record id (table:⟨id⟩); the id field is stripped
// from stored content and restored from the record id on reads.
type SurrealCollection[T any] struct {
	db    *surrealdb.DB
	table string
	kind  string
}

func NewSurrealCollection[T any](s *SurrealDB, table, kind string) *SurrealCollection[T] {
	return &SurrealCollection[T]{
		db:    s.db,
		table: table,
		kind:  kind,
	}
}

func (c *SurrealCollection[T]) thing(id string) string {
	// UUIDs carry hyphens, so the record part needs bracket escaping.
	return fmt.Sprintf("%s:⟨%s⟩", c.table, id)
}

func (c *SurrealCollection[T]) Add(ctx context.Context, id string, record *T) (string, error) {
	if id == "" {
		return "", utils.NewInvalidInputError("missing identifier for " + c.kind)
	}

	data, err := toDocument(record)
	if err != nil {
		return "", utils.NewAppError(utils.ErrDatabase, "failed to encode "+c.kind, err)
	}

	// UPDATE on a specific record id creates the record when absent,
	// which gives Add its upsert semantics.
	if _, err := c.db.Update(c.thing(id), data); err != nil {
		return "", utils.NewAppError(utils.ErrDatabase, "failed to save "+c.kind, err)
	}
	return id, nil
}

func (c *SurrealCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	raw, err := c.db.Select(c.thing(id))
	if err != nil {
		if isMissingRecord(err) {
			return nil, utils.NewNotFoundError(c.kind)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to fetch "+c.kind, err)
	}
	if raw == nil {
		return nil, utils.NewNotFoundError(c.kind)
	}

	record, err := decodeOne[T](raw, c.table)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to decode "+c.kind, err)
	}
	if record == nil {
		return nil, utils.NewNotFoundError(c.kind)
	}
	return record, nil
}

func (c *SurrealCollection[T]) GetAll(ctx context.Context) ([]*T, error) {
	raw, err := c.db.Select(c.table)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query "+c.kind+" records", err)
	}
	records, err := decodeMany[T](raw, c.table)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to decode "+c.kind+" records", err)
	}
	return records, nil
}

func (c *SurrealCollection[T]) GetByField(ctx context.Context, field, value string) ([]*T, error) {
	if err := checkFieldName(field); err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("SELECT * FROM type::table($tb) WHERE %s = $value", field)
	raw, err := c.db.Query(sql, map[string]any{"tb": c.table, "value": value})
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query "+c.kind+" records", err)
	}
	records, err := decodeQuery[T](raw, c.table)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to decode "+c.kind+" records", err)
	}
	return records, nil
}

func (c *SurrealCollection[T]) Update(ctx context.Context, id string, partial map[string]any) error {
	// Change merges content but would also create an absent record, so
	// existence is checked first to keep update's missing-id failure.
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}

	delete(partial, "id")
	if _, err := c.db.Change(c.thing(id), partial); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update "+c.kind, err)
	}
	return nil
}

func (c *SurrealCollection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.db.Delete(c.thing(id)); err != nil {
		if isMissingRecord(err) {
			return nil
		}
		return utils.NewAppError(utils.ErrDatabase, "failed to delete "+c.kind, err)
	}
	return nil
}

// isMissingRecord reports whether err is the client's missing-record
// failure. Record-id operations that resolve no record come back as a
// PermissionError whose text names the record.
func isMissingRecord(err error) bool {
	return strings.Contains(err.Error(), "Unable to access record")
}

// ListPage returns one page ordered by record id plus the table total.
func (c *SurrealCollection[T]) ListPage(ctx context.Context, req pagination.PageRequest) ([]*T, int64, error) {
	all, err := c.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))

	order := "ASC"
	comparator := ">"
	if req.Order == pagination.OrderDesc {
		order = "DESC"
		comparator = "<"
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM type::table($tb)")
	vars := map[string]any{"tb": c.table, "limit": req.Limit}
	if req.Cursor != "" {
		fmt.Fprintf(&sb, " WHERE id %s type::thing($tb, $cursor)", comparator)
		vars["cursor"] = req.Cursor
	}
	fmt.Fprintf(&sb, " ORDER BY id %s LIMIT $limit", order)
	if req.Cursor == "" && req.Offset != nil {
		sb.WriteString(" START $start")
		vars["start"] = *req.Offset
	}

	raw, err := c.db.Query(sb.String(), vars)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "failed to page "+c.kind+" records", err)
	}
	records, err := decodeQuery[T](raw, c.table)
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "failed to decode "+c.kind+" records", err)
	}
	return records, total, nil
}

// toDocument flattens a record into the content map stored in Surreal.
// The id field is dropped; the record id carries the identity.
func toDocument(record any) (map[string]any, error) {
	buf, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	delete(doc, "id")
	return doc, nil
}

// normalizeID rewrites Surreal's table:⟨uuid⟩ record id back into the
// plain entity id the record types declare.
func normalizeID(doc map[string]any, table string) {
	raw, ok := doc["id"].(string)
	if !ok {
		return
	}
	id := strings.TrimPrefix(raw, table+":")
	id = strings.Trim(id, "⟨⟩`")
	doc["id"] = id
}

func decodeDocs[T any](docs []map[string]any, table string) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		normalizeID(doc, table)
		buf, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		var record T
		if err := json.Unmarshal(buf, &record); err != nil {
			return nil, err
		}
		out = append(out, &record)
	}
	return out, nil
}

func decodeOne[T any](raw any, table string) (*T, error) {
	switch v := raw.(type) {
	case map[string]any:
		records, err := decodeDocs[T]([]map[string]any{v}, table)
		if err != nil {
			return nil, err
		}
		return records[0], nil
	case []any:
		records, err := decodeMany[T](raw, table)
		if err != nil || len(records) == 0 {
			return nil, err
		}
		return records[0], nil
	default:
		return nil, nil
	}
}

func decodeMany[T any](raw any, table string) ([]*T, error) {
	items, ok := raw.([]any)
	if !ok {
		if raw == nil {
			return []*T{}, nil
		}
		if doc, ok := raw.(map[string]any); ok {
			return decodeDocs[T]([]map[string]any{doc}, table)
		}
		return nil, fmt.Errorf("unexpected result shape %T", raw)
	}

	docs := make([]map[string]any, 0, len(items))
	for _, item := range items {
		doc, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected record shape %T", item)
		}
		docs = append(docs, doc)
	}
	return decodeDocs[T](docs, table)
}

// decodeQuery unwraps the per-statement results the query RPC returns.
func decodeQuery[T any](raw any, table string) ([]*T, error) {
	statements, ok := raw.([]any)
	if !ok {
		return decodeMany[T](raw, table)
	}

	records := []*T{}
	for _, statement := range statements {
		envelope, ok := statement.(map[string]any)
		if !ok {
			continue
		}
		if status, ok := envelope["status"].(string); ok && status != "OK" {
			return nil, fmt.Errorf("query statement failed: %v", envelope["detail"])
		}
		part, err := decodeMany[T](envelope["result"], table)
		if err != nil {
			return nil, err
		}
		records = append(records, part...)
	}
	return records, nil
}
