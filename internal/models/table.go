package models

// TableMode tells who computes sorting, search and pagination for a table.
type TableMode string

const (
	// TableModeServer tables are sorted, searched and paginated by the store.
	TableModeServer TableMode = "server"
	// TableModeMemory tables are loaded whole and sliced in memory.
	TableModeMemory TableMode = "memory"
)

type ColumnDefinition struct {
	ID         string `json:"id"`
	Header     string `json:"header"`
	Sortable   bool   `json:"sortable"`
	Searchable bool   `json:"searchable"`
	Pinned     bool   `json:"pinned"`
}

type TableDefinition struct {
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Mode    TableMode          `json:"mode"`
	Columns []ColumnDefinition `json:"columns"`
}
