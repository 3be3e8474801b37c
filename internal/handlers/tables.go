package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	"github.com/gctalent/talent-backoffice/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListTables returns the table definitions
// (GET /tables)
func (h *Handler) ListTables(c *gin.Context) {
	defs := h.tables.Definitions()

	resp := v1.TableList{Tables: make([]v1.Table, 0, len(defs))}
	for _, def := range defs {
		resp.Tables = append(resp.Tables, v1.NewTableFromModel(def))
	}

	c.JSON(http.StatusOK, resp)
}

// GetTableRows renders the view described by the query
// (GET /tables/{table}/rows)
func (h *Handler) GetTableRows(c *gin.Context, table string, params v1.GetTableRowsParams) {
	h.render(c, table, params.Selection, nil)
}

// PatchTableState applies the body to the view described by the query
// (PATCH /tables/{table}/state)
func (h *Handler) PatchTableState(c *gin.Context, table string, params v1.PatchTableStateParams) {
	var body v1.PatchTableStateJSONRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	patch := body.ToService()
	h.render(c, table, params.Selection, &patch)
}

func (h *Handler) render(c *gin.Context, table string, selectionID *string, patch *services.StatePatch) {
	log := zap.S().Named("table_handler")
	ctx := c.Request.Context()

	req := services.RenderRequest{URL: rowsURL(c, table), Patch: patch}
	if selectionID != nil && *selectionID != "" {
		sel, err := h.selections.Load(ctx, table, *selectionID)
		if err != nil {
			handleError(c, log, err, "failed to load selection")
			return
		}
		req.Selection = sel
	}

	res, err := h.tables.Render(ctx, table, req)
	if err != nil {
		handleError(c, log, err, "failed to render table")
		return
	}

	view := v1.NewTableViewFromResult(table, res)
	c.Header("Content-Location", view.Location)
	c.JSON(http.StatusOK, view)
}

// ExportTable writes the view, or the rows of a selection, as xlsx
// (GET /tables/{table}/export)
func (h *Handler) ExportTable(c *gin.Context, table string, params v1.ExportTableParams) {
	log := zap.S().Named("table_handler")

	var selectionID string
	if params.Selection != nil {
		selectionID = *params.Selection
	}

	var buf bytes.Buffer
	req := services.RenderRequest{URL: rowsURL(c, table)}
	if err := h.export.Export(c.Request.Context(), table, selectionID, req, &buf); err != nil {
		handleError(c, log, err, "failed to export table")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
