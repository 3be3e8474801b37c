// Package handlers implements the HTTP API of the back office.
//
// Handlers delegate to the services layer and focus on parameter binding,
// response formatting and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Body binding                                                 │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  TableService │ SelectionService │ ExportService                │
//	└─────────────────────────────────────────────────────────────────┘
//
// Handler implements v1.ServerInterface and is registered with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
//	┌────────┬────────────────────────────────┬──────────────────────────────────┐
//	│ Method │ Endpoint                       │ Description                      │
//	├────────┼────────────────────────────────┼──────────────────────────────────┤
//	│ GET    │ /tables                        │ Table definitions                │
//	│ GET    │ /tables/{table}/rows           │ Render the view in the query     │
//	│ PATCH  │ /tables/{table}/state          │ Change the view in the query     │
//	│ POST   │ /tables/{table}/selections     │ Create a selection               │
//	│ GET    │ /tables/{table}/selections/{id}│ Selected row ids                 │
//	│ POST   │ /tables/{table}/selections/{id}│ Select or deselect rows          │
//	│ DELETE │ /tables/{table}/selections/{id}│ Delete a selection               │
//	│ GET    │ /tables/{table}/export         │ xlsx of the view or a selection  │
//	└────────┴────────────────────────────────┴──────────────────────────────────┘
//
// # View State in the Query
//
// Every table endpoint reads the view state from its query string:
//
//	┌────────────────┬─────────────────────────────────────────────────┐
//	│ Parameter      │ Value                                           │
//	├────────────────┼─────────────────────────────────────────────────┤
//	│ sort_rule      │ JSON array of {"id": string, "desc": bool}      │
//	│ search_term    │ search term                                     │
//	│ search_column  │ column id, absent for a global search           │
//	│ hidden_columns │ comma separated column ids                      │
//	│ page           │ 1-based page number                             │
//	│ page_size      │ rows per page                                   │
//	└────────────────┴─────────────────────────────────────────────────┘
//
// Malformed values fall back to the table's preset. Responses carry the
// canonical query, holding only values that differ from the preset, in the
// "query" field and as the Content-Location header:
//
//	GET /api/v1/tables/candidates/rows?page=1&page_size=abc&search_term=roy
//
//	Content-Location: /api/v1/tables/candidates/rows?search_term=roy
//
// # State Patch
//
// PATCH /tables/{table}/state takes the changes to apply, in this order:
//
//	{
//	    "reset": false,
//	    "sorting": [{"id": "score", "desc": true}],
//	    "toggleSort": "name",
//	    "search": {"term": "roy", "column": "name"},
//	    "pagination": {"pageIndex": 0, "pageSize": 25},
//	    "hiddenColumns": ["email"],
//	    "toggleColumn": "skills"
//	}
//
// A search change returns to the first page unless pagination is given.
//
// # Selections
//
// POST /tables/{table}/selections/{id} takes:
//
//	{
//	    "rowIds": ["c-1"],     // rows by id
//	    "indexes": [0, 2],     // rows by position in the current page
//	    "page": true,          // every row of the current page
//	    "selected": true,      // select or deselect, default true
//	    "clear": false         // drop the previous selection first
//	}
//
// The current page is the one described by the query. The response holds the
// stored selection and the rendered view.
//
// # Error Handling
//
//	{ "error": "error message" }
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Body binding error          │ 400    │ Malformed JSON body          │
//	│ InvalidArgumentError        │ 400    │ Invalid state change         │
//	│ ResourceNotFoundError       │ 404    │ Unknown table or selection   │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
package handlers
