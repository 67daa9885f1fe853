package mock

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("mock: entity not found")
	// ErrInvalid is returned when a create or update payload is rejected.
	ErrInvalid = errors.New("mock: invalid payload")
)

// Patch is a partial record. Keys are JSON field names.
type Patch map[string]any

// Table holds every record of one kind. It is safe for concurrent use.
type Table[T Entity] struct {
	mu    sync.RWMutex
	items []T

	kind     string
	search   []string
	required []string
	now      func() time.Time
}

func newTable[T Entity](kind string, items []T, now func() time.Time, search, required []string) *Table[T] {
	return &Table[T]{
		items:    items,
		kind:     kind,
		search:   search,
		required: required,
		now:      now,
	}
}

// Kind is the singular display name of the records, e.g. "User".
func (t *Table[T]) Kind() string {
	return t.kind
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// All returns a copy of every record in insertion order.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

// Filter returns the records matching q's filters and search term, without
// paging.
func (t *Table[T]) Filter(q Query) ([]T, error) {
	items := t.All()
	if len(q.Filters) == 0 && q.Search == "" {
		return items, nil
	}

	needle := strings.ToLower(q.Search)
	out := items[:0]
	for _, item := range items {
		fields, err := fieldsOf(item)
		if err != nil {
			return nil, err
		}
		if !matchFilters(fields, q.Filters) {
			continue
		}
		if needle != "" && !t.matchSearch(fields, needle) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// List filters and pages the table.
func (t *Table[T]) List(q Query) (Page[T], error) {
	q = q.normalize()
	items, err := t.Filter(q)
	if err != nil {
		return Page[T]{}, err
	}
	return Paginate(items, q.Page, q.Limit), nil
}

func (t *Table[T]) Get(id int) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i := t.indexOf(id); i >= 0 {
		return t.items[i], nil
	}
	var zero T
	return zero, t.notFound(id)
}

// Create stores a new record built from patch. The id is one past the
// largest existing id and created_at is stamped with the current time.
func (t *Table[T]) Create(patch Patch) (T, error) {
	var zero T
	for _, field := range t.required {
		if v, ok := patch[field]; !ok || v == nil || v == "" {
			return zero, fmt.Errorf("%w: %s is required", ErrInvalid, field)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := 1
	for _, item := range t.items {
		if id := item.EntityID(); id >= next {
			next = id + 1
		}
	}

	overlay := make(Patch, len(patch)+2)
	for k, v := range patch {
		overlay[k] = v
	}
	overlay["id"] = next
	overlay["created_at"] = t.now().UTC()

	created, err := merge(zero, overlay)
	if err != nil {
		return zero, err
	}
	t.items = append(t.items, created)
	return created, nil
}

// Update overlays patch on the stored record. The id cannot be changed.
func (t *Table[T]) Update(id int, patch Patch) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	i := t.indexOf(id)
	if i < 0 {
		return zero, t.notFound(id)
	}

	overlay := make(Patch, len(patch)+1)
	for k, v := range patch {
		overlay[k] = v
	}
	overlay["id"] = id

	updated, err := merge(t.items[i], overlay)
	if err != nil {
		return zero, err
	}
	t.items[i] = updated
	return updated, nil
}

func (t *Table[T]) Delete(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return t.notFound(id)
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (t *Table[T]) indexOf(id int) int {
	for i, item := range t.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (t *Table[T]) notFound(id int) error {
	return &NotFoundError{Kind: t.kind, ID: id}
}

func (t *Table[T]) matchSearch(fields map[string]any, needle string) bool {
	for _, name := range t.search {
		if s, ok := fields[name].(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// NotFoundError names the kind and id that was looked up.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func matchFilters(fields map[string]any, filters map[string]string) bool {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := fields[k]
		if !ok {
			return false
		}
		if formatField(v) != filters[k] {
			return false
		}
	}
	return true
}

func formatField(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%f", x), "0"), ".")
	default:
		return fmt.Sprint(x)
	}
}

func fieldsOf(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// merge overlays patch on base through their JSON representation.
func merge[T any](base T, patch Patch) (T, error) {
	var zero T

	fields, err := fieldsOf(base)
	if err != nil {
		return zero, err
	}
	for k, v := range patch {
		fields[k] = v
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return out, nil
}
