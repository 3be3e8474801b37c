package tablestate

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Keys names the query parameters holding a view state.
type Keys struct {
	SortRule      string
	SearchColumn  string
	SearchTerm    string
	HiddenColumns string
	Page          string
	PageSize      string
}

// DefaultKeys are the unprefixed query keys.
var DefaultKeys = Keys{
	SortRule:      "sort_rule",
	SearchColumn:  "search_column",
	SearchTerm:    "search_term",
	HiddenColumns: "hidden_columns",
	Page:          "page",
	PageSize:      "page_size",
}

// KeysWithPrefix scopes every key to one table so several tables can share a
// query string. An empty prefix returns DefaultKeys.
func KeysWithPrefix(prefix string) Keys {
	if prefix == "" {
		return DefaultKeys
	}
	p := func(k string) string { return prefix + "_" + k }
	return Keys{
		SortRule:      p(DefaultKeys.SortRule),
		SearchColumn:  p(DefaultKeys.SearchColumn),
		SearchTerm:    p(DefaultKeys.SearchTerm),
		HiddenColumns: p(DefaultKeys.HiddenColumns),
		Page:          p(DefaultKeys.Page),
		PageSize:      p(DefaultKeys.PageSize),
	}
}

// All returns every key in a stable order.
func (k Keys) All() []string {
	return []string{k.SortRule, k.SearchColumn, k.SearchTerm, k.HiddenColumns, k.Page, k.PageSize}
}

// Decoded is the result of decoding one slice. OK is false when the value
// was missing or malformed.
type Decoded[T any] struct {
	Value T
	OK    bool
}

func present[T any](v T) Decoded[T] {
	return Decoded[T]{Value: v, OK: true}
}

func absent[T any]() Decoded[T] {
	return Decoded[T]{}
}

// Or returns the decoded value, or fallback when absent.
func (d Decoded[T]) Or(fallback T) T {
	if d.OK {
		return d.Value
	}
	return fallback
}

type sortRuleWire struct {
	ID   *string `json:"id"`
	Desc *bool   `json:"desc"`
}

func EncodeSorting(s Sorting) string {
	if s == nil {
		s = Sorting{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func DecodeSorting(raw string) Decoded[Sorting] {
	var wire []sortRuleWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return absent[Sorting]()
	}
	if wire == nil {
		return absent[Sorting]()
	}

	out := make(Sorting, 0, len(wire))
	for _, w := range wire {
		if w.ID == nil || *w.ID == "" || w.Desc == nil {
			return absent[Sorting]()
		}
		out = append(out, SortRule{ColumnID: *w.ID, Desc: *w.Desc})
	}
	return present(out)
}

func EncodeHiddenColumns(h HiddenColumns) string {
	return strings.Join(h, ",")
}

func DecodeHiddenColumns(raw string) Decoded[HiddenColumns] {
	out := HiddenColumns{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || out.Has(part) {
			continue
		}
		out = append(out, part)
	}
	return present(out)
}

// EncodePage renders a 0-based page index as the 1-based query value.
func EncodePage(pageIndex int) string {
	return strconv.Itoa(pageIndex + 1)
}

// DecodePage reads a 1-based page number and returns the 0-based index.
func DecodePage(values url.Values, key string) Decoded[int] {
	page, ok := decodeInt(values, key)
	if !ok || page < 1 || page > MaxRowOffset {
		return absent[int]()
	}
	return present(page - 1)
}

func EncodePageSize(size int) string {
	return strconv.Itoa(size)
}

func DecodePageSize(values url.Values, key string) Decoded[int] {
	size, ok := decodeInt(values, key)
	if !ok || size < 1 || size > MaxRowOffset {
		return absent[int]()
	}
	return present(size)
}

func decodeInt(values url.Values, key string) (int, bool) {
	if !values.Has(key) {
		return 0, false
	}
	var v int
	if err := runtime.BindQueryParameter("form", true, false, key, values, &v); err != nil {
		return 0, false
	}
	return v, true
}

// EncodeSearch returns the term and column values. An empty column means the
// column key should be removed.
func EncodeSearch(s Search) (term, column string) {
	return s.Term, s.Column
}

// DecodeSearch needs the term key to be present. The column key alone is not
// a search.
func DecodeSearch(values url.Values, keys Keys) Decoded[Search] {
	if !values.Has(keys.SearchTerm) {
		return absent[Search]()
	}
	return present(Search{
		Term:   values.Get(keys.SearchTerm),
		Column: strings.TrimSpace(values.Get(keys.SearchColumn)),
	})
}

// QueryState is a view state decoded from a query string, one result per
// slice.
type QueryState struct {
	Sorting       Decoded[Sorting]
	Search        Decoded[Search]
	PageIndex     Decoded[int]
	PageSize      Decoded[int]
	HiddenColumns Decoded[HiddenColumns]
}

// DecodeQuery decodes every slice independently. It never fails; malformed
// slices are reported as absent.
func DecodeQuery(values url.Values, keys Keys) QueryState {
	qs := QueryState{
		Search:    DecodeSearch(values, keys),
		PageIndex: DecodePage(values, keys.Page),
		PageSize:  DecodePageSize(values, keys.PageSize),
	}
	if values.Has(keys.SortRule) {
		qs.Sorting = DecodeSorting(values.Get(keys.SortRule))
	}
	if values.Has(keys.HiddenColumns) {
		qs.HiddenColumns = DecodeHiddenColumns(values.Get(keys.HiddenColumns))
	}
	return qs
}
