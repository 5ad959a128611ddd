package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/RouqX7/AthleteConnect/internal/pagination"
	"github.com/RouqX7/AthleteConnect/internal/utils"
)

// memStore is the in-memory PagedStore used by the service tests. It
// mirrors the real providers' contract: upsert on Add, not-found on Get
// and Update of absent ids, idempotent Delete, id-ordered paging.
type memStore[T any] struct {
	mu      sync.Mutex
	kind    string
	records map[string]*T
}

func newMemStore[T any](kind string) *memStore[T] {
	return &memStore[T]{kind: kind, records: map[string]*T{}}
}

func cloneRecord[T any](record *T) (*T, error) {
	buf, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *memStore[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *memStore[T]) Add(ctx context.Context, id string, record *T) (string, error) {
	if id == "" {
		return "", utils.NewInvalidInputError("missing identifier for " + m.kind)
	}
	cp, err := cloneRecord(record)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = cp
	return id, nil
}

func (m *memStore[T]) Get(ctx context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, utils.NewNotFoundError(m.kind)
	}
	return cloneRecord(record)
}

func (m *memStore[T]) GetAll(ctx context.Context) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*T, 0, len(m.records))
	for _, id := range m.sortedIDs(true) {
		cp, err := cloneRecord(m.records[id])
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *memStore[T]) GetByField(ctx context.Context, field, value string) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*T{}
	for _, id := range m.sortedIDs(true) {
		doc, err := toDoc(m.records[id])
		if err != nil {
			return nil, err
		}
		if fmt.Sprintf("%v", doc[field]) == value {
			cp, err := cloneRecord(m.records[id])
			if err != nil {
				return nil, err
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *memStore[T]) Update(ctx context.Context, id string, partial map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return utils.NewNotFoundError(m.kind)
	}
	doc, err := toDoc(record)
	if err != nil {
		return err
	}
	for k, v := range partial {
		doc[k] = v
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var merged T
	if err := json.Unmarshal(buf, &merged); err != nil {
		return err
	}
	m.records[id] = &merged
	return nil
}

func (m *memStore[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memStore[T]) ListPage(ctx context.Context, req pagination.PageRequest) ([]*T, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.sortedIDs(req.Order != pagination.OrderDesc)
	total := int64(len(ids))

	if req.Cursor != "" {
		cut := 0
		for i, id := range ids {
			if id == req.Cursor {
				cut = i + 1
				break
			}
		}
		ids = ids[cut:]
	} else if req.Offset != nil && *req.Offset < len(ids) {
		ids = ids[*req.Offset:]
	} else if req.Offset != nil {
		ids = nil
	}

	if req.Limit > 0 && len(ids) > req.Limit {
		ids = ids[:req.Limit]
	}

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		cp, err := cloneRecord(m.records[id])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, cp)
	}
	return out, total, nil
}

func (m *memStore[T]) sortedIDs(asc bool) []string {
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if !asc {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	return ids
}

func toDoc(record any) (map[string]any, error) {
	buf, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
