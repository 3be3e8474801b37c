package models

import "time"

// Selection is a named set of row ids picked in one table. It outlives the
// page the rows were picked on.
type Selection struct {
	ID        string
	Table     string
	RowIDs    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
