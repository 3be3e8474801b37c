package tablestate

// SelectionAdapter keeps a row selection keyed by caller row ids and
// translates it to and from the index keyed selection of the rows currently
// shown. Rows that are not on screen keep their selection, so it survives a
// refetch as long as the same ids come back.
type SelectionAdapter[T any] struct {
	rowID     func(T) string
	selection RowSelection
}

func NewSelectionAdapter[T any](rowID func(T) string, initial RowSelection) *SelectionAdapter[T] {
	return &SelectionAdapter[T]{
		rowID:     rowID,
		selection: initial.Clone(),
	}
}

// Selection returns a copy of the id keyed selection.
func (a *SelectionAdapter[T]) Selection() RowSelection {
	return a.selection.Clone()
}

func (a *SelectionAdapter[T]) Set(selection RowSelection) {
	a.selection = selection.Clone()
}

func (a *SelectionAdapter[T]) IsSelected(row T) bool {
	return a.selection[a.rowID(row)]
}

// IndexSelection returns the selection of rows by their position.
func (a *SelectionAdapter[T]) IndexSelection(rows []T) map[int]bool {
	out := make(map[int]bool)
	for i, row := range rows {
		if a.selection[a.rowID(row)] {
			out[i] = true
		}
	}
	return out
}

// ApplyIndexSelection replaces the selection of rows with indexes. Ids of
// rows outside rows are left as they are.
func (a *SelectionAdapter[T]) ApplyIndexSelection(rows []T, indexes map[int]bool) RowSelection {
	for i, row := range rows {
		id := a.rowID(row)
		if indexes[i] {
			a.selection[id] = true
		} else {
			delete(a.selection, id)
		}
	}
	return a.Selection()
}

// Toggle flips the selection of the row at index. It reports false when
// index is out of range.
func (a *SelectionAdapter[T]) Toggle(rows []T, index int) (RowSelection, bool) {
	if index < 0 || index >= len(rows) {
		return a.Selection(), false
	}
	indexes := a.IndexSelection(rows)
	indexes[index] = !indexes[index]
	return a.ApplyIndexSelection(rows, indexes), true
}

// SetAll selects or clears every row in rows.
func (a *SelectionAdapter[T]) SetAll(rows []T, selected bool) RowSelection {
	indexes := make(map[int]bool, len(rows))
	if selected {
		for i := range rows {
			indexes[i] = true
		}
	}
	return a.ApplyIndexSelection(rows, indexes)
}

// SetIDs selects or clears rows by id without needing them on screen.
func (a *SelectionAdapter[T]) SetIDs(ids []string, selected bool) RowSelection {
	for _, id := range ids {
		if selected {
			a.selection[id] = true
		} else {
			delete(a.selection, id)
		}
	}
	return a.Selection()
}

func (a *SelectionAdapter[T]) AllSelected(rows []T) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if !a.selection[a.rowID(row)] {
			return false
		}
	}
	return true
}

func (a *SelectionAdapter[T]) SomeSelected(rows []T) bool {
	for _, row := range rows {
		if a.selection[a.rowID(row)] {
			return true
		}
	}
	return false
}

func (a *SelectionAdapter[T]) Count() int {
	return len(a.selection)
}
