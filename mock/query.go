package mock

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Query selects and pages records of one kind. Filters match a record field
// by exact string value; Search is a case-insensitive substring match over
// the kind's text fields.
type Query struct {
	Filters map[string]string
	Search  string
	Page    int
	Limit   int
}

// reserved query parameters that are not field filters.
var reservedParams = map[string]bool{
	"page":   true,
	"limit":  true,
	"search": true,
}

// QueryFromValues builds a Query from URL query parameters. Every parameter
// other than page, limit and search becomes a field filter.
func QueryFromValues(v url.Values) Query {
	q := Query{Filters: make(map[string]string)}
	for key, vals := range v {
		if reservedParams[key] || len(vals) == 0 || vals[0] == "" {
			continue
		}
		q.Filters[key] = vals[0]
	}
	q.Search = strings.TrimSpace(v.Get("search"))
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.Limit, _ = strconv.Atoi(v.Get("limit"))
	return q.normalize()
}

func (q Query) normalize() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Page is one page of a filtered list.
type Page[T any] struct {
	Data       []T `json:"data" yaml:"data"`
	Total      int `json:"total" yaml:"total"`
	Page       int `json:"page" yaml:"page"`
	Limit      int `json:"limit" yaml:"limit"`
	TotalPages int `json:"total_pages" yaml:"total_pages"`
}

// Paginate slices items according to page and limit. TotalPages is
// ceil(len(items)/limit) and Data never holds more than limit items.
func Paginate[T any](items []T, page, limit int) Page[T] {
	q := Query{Page: page, Limit: limit}.normalize()

	total := len(items)
	totalPages := total / q.Limit
	if total%q.Limit != 0 {
		totalPages++
	}

	// Compare before multiplying so huge page or limit values cannot overflow.
	start, end := total, total
	if q.Page-1 <= total/q.Limit {
		start = min((q.Page-1)*q.Limit, total)
		end = total
		if q.Limit < total-start {
			end = start + q.Limit
		}
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}
}
