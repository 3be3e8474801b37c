// Package tablestate keeps the view state of a data table (sorting, search,
// pagination, hidden columns and row selection) and mirrors it into a query
// string.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                        View[T]                                │
//	│  columns + rows + slice modes → render Model                  │
//	├───────────────────────────────┬───────────────────────────────┤
//	│         Controller            │          Engine[T]            │
//	│  owns ViewState               │  filter → sort → paginate     │
//	│  one updater per slice        │  (skips manual slices)        │
//	├───────────────────────────────┼───────────────────────────────┤
//	│     Codec (DecodeQuery,       │     SelectionAdapter[T]       │
//	│     Encode*/Decode*)          │  row id ↔ page index          │
//	├───────────────────────────────┴───────────────────────────────┤
//	│                   Sink (URL query, replace only)              │
//	└───────────────────────────────────────────────────────────────┘
//
// # Query Keys
//
//	┌────────────────┬──────────────────────────┬────────────────────────┐
//	│ Key            │ Format                   │ Meaning                │
//	├────────────────┼──────────────────────────┼────────────────────────┤
//	│ sort_rule      │ [{"id":..,"desc":..}]    │ current sort           │
//	│ search_column  │ string                   │ column to search       │
//	│ search_term    │ string                   │ free-text query        │
//	│ hidden_columns │ comma-separated ids      │ hidden columns         │
//	│ page           │ 1-based integer          │ current page           │
//	│ page_size      │ integer                  │ rows per page          │
//	└────────────────┴──────────────────────────┴────────────────────────┘
//
// KeysWithPrefix("pools") gives pools_sort_rule, pools_page, ... so that
// several tables can share one query string.
//
// # Construction
//
// NewController decodes each key independently. A missing or malformed value
// falls back to the caller's InitialState, then to the hard-coded defaults
// (page 1, 10 rows, no sort, no search, no hidden columns). Hidden column ids
// that are not columns of the table are dropped.
//
// # Sync
//
// After every update the controller rewrites the keys of the changed slice
// only. A value equal to its default (the caller's initial value when given,
// otherwise the hard-coded one) removes the key, anything else sets it. The
// whole query is written with Sink.Replace. The in-memory state is the
// source of truth; the query is only a mirror of it.
//
// # Manual Slices
//
// A slice marked Manual in Config is computed by the data source, the engine
// passes rows through unchanged for it. A server-driven table marks all three
// slices manual and refetches in the On*Change callbacks.
package tablestate
