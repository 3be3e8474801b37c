// Package store implements the data access layer for the talent back-office.
//
// Storage is a DuckDB database, either a file or a private in-memory
// database (":memory:") for tests and demos.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├────────────────┬────────────────┬───────────────┬───────────────┤
//	│ CandidateStore │   SkillStore   │DepartmentStore│SelectionStore │
//	│       ▼        │       ▼        │       ▼       │       ▼       │
//	│  candidates    │    skills      │  departments  │  selections   │
//	│  candidate_    │                │               │  selection_   │
//	│  skills        │                │               │  rows         │
//	├────────────────┴────────────────┴───────────────┴───────────────┤
//	│              QueryInterceptor (debug SQL logging)               │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// All tables are created by migrations embedded in
// internal/store/migrations/sql/:
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  departments       │  Hiring departments                         │
//	│  candidates        │  Applicants, one row per person             │
//	│  skills            │  Skill catalogue                            │
//	│  candidate_skills  │  Candidate to skill links                   │
//	│  selections        │  Named row selections per table             │
//	│  selection_rows    │  Row ids of each selection                  │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Opening the database
//
//	db, err := store.NewDB(path)
//	s := store.NewStore(db)
//	err = s.Migrate(ctx)
//
// NewDB pings the database under an exponential backoff so a file still
// locked by a previous process is retried for a few seconds.
//
// # CandidateStore
//
// Candidates are the only table too large to load whole. List and Count use
// the functional options pattern: each ListOption modifies a squirrel
// SelectBuilder.
//
//	candidates, err := s.Candidate().List(ctx,
//	    store.BySearch("alice", "name", "email"),
//	    store.WithSort([]store.SortParam{{Field: "score", Desc: true}}),
//	    store.WithLimit(10),
//	    store.WithOffset(20),
//	)
//	total, err := s.Candidate().Count(ctx, store.BySearch("alice", "name", "email"))
//
// Filtering Options:
//
//   - BySearch(term, columns...)
//     Case-insensitive substring match OR-ed over the columns. LIKE
//     wildcards in term match literally.
//     SQL: WHERE (c.name ILIKE '%alice%' ESCAPE '\' OR ...)
//
//   - ByIDs(ids...), ByPools(pools...)
//     SQL: WHERE c.id IN (...)
//
// Pagination Options:
//
//   - WithLimit(limit uint64), WithOffset(offset uint64)
//
// Sorting Options:
//
//   - WithSort(sorts []SortParam)
//     Multi-field sort. The candidate id is always appended as tie-breaker.
//
//   - WithDefaultSort()
//     Sorts by candidate id.
//
// Field Mapping:
//
//	┌──────────────┬──────────────────┬───────────────┐
//	│  API Field   │  Database Column │ Searched as   │
//	├──────────────┼──────────────────┼───────────────┤
//	│  name        │  c.name          │ text          │
//	│  email       │  c.email         │ text          │
//	│  pool        │  c.pool          │ text          │
//	│  department  │  d.name          │ text          │
//	│  status      │  c.status        │ text          │
//	│  score       │  c.score         │ CAST(VARCHAR) │
//	│  appliedAt   │  c.applied_at    │ CAST(VARCHAR) │
//	│  skills      │  LIST(s.name)    │ subquery      │
//	└──────────────┴──────────────────┴───────────────┘
//
// Count takes filter options only; sort options would break the aggregate.
//
// # SkillStore and DepartmentStore
//
// Small reference tables listed whole, each row carrying the number of
// linked candidates. They are sliced in memory by the table layer.
//
// # SelectionStore
//
// A selection is identified by (id, table). Save replaces all its rows in
// one transaction. Get and Delete return a ResourceNotFoundError for an
// unknown selection.
//
// # QueryInterceptor
//
// All sub-stores go through a QueryInterceptor that logs every statement,
// its arguments and duration at debug level on the "sql" logger.
package store
