// Package services implements the business logic layer of the back office.
//
// Services sit between the HTTP handlers and the store. Table views are built
// on pkg/tablestate: every request decodes the view state from the URL,
// applies the client's changes, fetches rows and returns the rendered model
// together with the canonical URL.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── TableService ─────► CandidateService, Store (skills, departments)
//	    ├── CandidateService ─► Store, Scheduler
//	    ├── SelectionService ─► Store, TableService
//	    ├── ExportService ────► TableService, SelectionService
//	    └── SeedService ──────► Store
//
// # TableService
//
// TableService is the registry of tables. Each table has column definitions,
// an initial state taken from the presets and a row source:
//
//	┌─────────────┬────────┬──────────────────────────────────────────┐
//	│ Table       │ Mode   │ Row source                               │
//	├─────────────┼────────┼──────────────────────────────────────────┤
//	│ candidates  │ server │ one page from the store plus a count     │
//	│ skills      │ memory │ every row, sorted and paged in memory    │
//	│ departments │ memory │ every row, sorted and paged in memory    │
//	└─────────────┴────────┴──────────────────────────────────────────┘
//
// Server tables mark sorting, search and pagination as manual so the view
// renders the fetched page as is.
//
// Render flow:
//
//	URL query ──► Controller (decode, sync canonical URL)
//	                 │
//	                 ▼
//	           StatePatch applied (search change resets the page)
//	                 │
//	                 ▼
//	           page size clamped to MaxPageSize
//	                 │
//	                 ▼
//	           rows fetched ──► SelectRequest applied ──► Model
//
// # CandidateService
//
// CandidateService lists candidates. The page query and the count query run
// concurrently on the scheduler and are joined with scheduler.Await. The
// count uses the filters only.
//
// # SelectionService
//
// Selections are stored per table and id. Apply loads the stored selection,
// renders the view with it, applies the select request and writes the result
// back. An empty id creates a new selection with a random uuid.
//
// # ExportService
//
// Export writes an xlsx workbook with the visible columns of the view. Rows
// are those of a stored selection, or every row matching the search, capped
// at ExportMaxRows.
//
// # SeedService
//
// SeedService writes deterministic demo data. Ids are derived with
// uuid.NewSHA1 so seeding twice updates the same rows.
package services
