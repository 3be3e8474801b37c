package v1

import (
	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/internal/services"
)

// NewTableFromModel converts a models.TableDefinition to an API Table.
func NewTableFromModel(def models.TableDefinition) Table {
	t := Table{
		Name:    def.Name,
		Title:   def.Title,
		Mode:    TableMode(def.Mode),
		Columns: make([]Column, 0, len(def.Columns)),
	}
	for _, c := range def.Columns {
		t.Columns = append(t.Columns, Column{
			Id:         c.ID,
			Header:     c.Header,
			Sortable:   c.Sortable,
			Searchable: c.Searchable,
			Pinned:     c.Pinned,
		})
	}
	return t
}

// NewTableViewFromResult converts a rendered view. Query is the canonical
// query string and Location the canonical URL.
func NewTableViewFromResult(table string, res *services.TableResult) TableView {
	return TableView{
		Table:    table,
		State:    res.State,
		Model:    res.Model,
		Query:    res.URL.RawQuery,
		Location: res.URL.String(),
	}
}

// NewSelectionFromModel converts a models.Selection to an API Selection.
func NewSelectionFromModel(sel models.Selection) Selection {
	rowIDs := sel.RowIDs
	if rowIDs == nil {
		rowIDs = []string{}
	}
	return Selection{
		Id:        sel.ID,
		Table:     sel.Table,
		RowIds:    rowIDs,
		CreatedAt: sel.CreatedAt,
		UpdatedAt: sel.UpdatedAt,
	}
}

// ToService converts the patch to the service patch.
func (p StatePatch) ToService() services.StatePatch {
	patch := services.StatePatch{
		Sorting:       p.Sorting,
		Search:        p.Search,
		Pagination:    p.Pagination,
		HiddenColumns: p.HiddenColumns,
	}
	if p.Reset != nil {
		patch.Reset = *p.Reset
	}
	if p.ToggleSort != nil {
		patch.ToggleSort = *p.ToggleSort
	}
	if p.ToggleColumn != nil {
		patch.ToggleColumn = *p.ToggleColumn
	}
	return patch
}

// ToService converts the request to a select request. A missing Selected
// selects.
func (r SelectionRequest) ToService() services.SelectRequest {
	req := services.SelectRequest{
		RowIDs:   r.RowIds,
		Indexes:  r.Indexes,
		Selected: true,
	}
	if r.Selected != nil {
		req.Selected = *r.Selected
	}
	if r.Page != nil {
		req.Page = *r.Page
	}
	if r.Clear != nil {
		req.Clear = *r.Clear
	}
	return req
}
