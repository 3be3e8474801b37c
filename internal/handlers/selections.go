package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	"github.com/gctalent/talent-backoffice/internal/services"
)

// CreateSelection stores a new selection of the view in the query
// (POST /tables/{table}/selections)
func (h *Handler) CreateSelection(c *gin.Context, table string) {
	h.applySelection(c, table, "", http.StatusCreated)
}

// UpdateSelection changes a selection, creating it when missing
// (POST /tables/{table}/selections/{id})
func (h *Handler) UpdateSelection(c *gin.Context, table string, id string) {
	h.applySelection(c, table, id, http.StatusOK)
}

func (h *Handler) applySelection(c *gin.Context, table, id string, status int) {
	log := zap.S().Named("selection_handler")

	// An empty body keeps the selection as is.
	var body v1.UpdateSelectionJSONRequestBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	req := services.RenderRequest{URL: rowsURL(c, table)}
	if body.RowIds != nil || body.Indexes != nil || body.Page != nil || body.Clear != nil {
		sel := body.ToService()
		req.Select = &sel
	}

	stored, res, err := h.selections.Apply(c.Request.Context(), table, id, req)
	if err != nil {
		handleError(c, log, err, "failed to save selection")
		return
	}

	resp := v1.NewSelectionFromModel(*stored)
	view := v1.NewTableViewFromResult(table, res)
	resp.View = &view

	c.JSON(status, resp)
}

// GetSelection returns the ids of a selection
// (GET /tables/{table}/selections/{id})
func (h *Handler) GetSelection(c *gin.Context, table string, id string) {
	sel, err := h.selections.Get(c.Request.Context(), table, id)
	if err != nil {
		handleError(c, zap.S().Named("selection_handler"), err, "failed to get selection")
		return
	}

	c.JSON(http.StatusOK, v1.NewSelectionFromModel(*sel))
}

// DeleteSelection removes a selection
// (DELETE /tables/{table}/selections/{id})
func (h *Handler) DeleteSelection(c *gin.Context, table string, id string) {
	if err := h.selections.Delete(c.Request.Context(), table, id); err != nil {
		handleError(c, zap.S().Named("selection_handler"), err, "failed to delete selection")
		return
	}

	c.Status(http.StatusNoContent)
}
