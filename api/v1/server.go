package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List the tables
	// (GET /tables)
	ListTables(c *gin.Context)
	// Render a table view from the query
	// (GET /tables/{table}/rows)
	GetTableRows(c *gin.Context, table string, params GetTableRowsParams)
	// Apply state changes to the view in the query
	// (PATCH /tables/{table}/state)
	PatchTableState(c *gin.Context, table string, params PatchTableStateParams)
	// Create a selection
	// (POST /tables/{table}/selections)
	CreateSelection(c *gin.Context, table string)
	// Get a selection
	// (GET /tables/{table}/selections/{id})
	GetSelection(c *gin.Context, table string, id string)
	// Change a selection
	// (POST /tables/{table}/selections/{id})
	UpdateSelection(c *gin.Context, table string, id string)
	// Delete a selection
	// (DELETE /tables/{table}/selections/{id})
	DeleteSelection(c *gin.Context, table string, id string)
	// Export the view as xlsx
	// (GET /tables/{table}/export)
	ExportTable(c *gin.Context, table string, params ExportTableParams)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandler       func(*gin.Context, error, int)
}

type MiddlewareFunc func(c *gin.Context)

func (siw *ServerInterfaceWrapper) runMiddlewares(c *gin.Context) bool {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return false
		}
	}
	return true
}

func (siw *ServerInterfaceWrapper) bindPath(c *gin.Context, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter %s: %w", name, err), http.StatusBadRequest)
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) bindSelection(c *gin.Context, dest **string) bool {
	err := runtime.BindQueryParameter("form", true, false, "selection", c.Request.URL.Query(), dest)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter selection: %w", err), http.StatusBadRequest)
		return false
	}
	return true
}

// ListTables operation middleware
func (siw *ServerInterfaceWrapper) ListTables(c *gin.Context) {
	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.ListTables(c)
}

// GetTableRows operation middleware
func (siw *ServerInterfaceWrapper) GetTableRows(c *gin.Context) {
	var table string
	if !siw.bindPath(c, "table", &table) {
		return
	}

	var params GetTableRowsParams
	if !siw.bindSelection(c, &params.Selection) {
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetTableRows(c, table, params)
}

// PatchTableState operation middleware
func (siw *ServerInterfaceWrapper) PatchTableState(c *gin.Context) {
	var table string
	if !siw.bindPath(c, "table", &table) {
		return
	}

	var params PatchTableStateParams
	if !siw.bindSelection(c, &params.Selection) {
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.PatchTableState(c, table, params)
}

// CreateSelection operation middleware
func (siw *ServerInterfaceWrapper) CreateSelection(c *gin.Context) {
	var table string
	if !siw.bindPath(c, "table", &table) {
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.CreateSelection(c, table)
}

// GetSelection operation middleware
func (siw *ServerInterfaceWrapper) GetSelection(c *gin.Context) {
	var table, id string
	if !siw.bindPath(c, "table", &table) || !siw.bindPath(c, "id", &id) {
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.GetSelection(c, table, id)
}

// UpdateSelection operation middleware
func (siw *ServerInterfaceWrapper) UpdateSelection(c *gin.Context) {
	var table, id string
	if !siw.bindPath(c, "table", &table) || !siw.bindPath(c, "id", &id) {
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.UpdateSelection(c, table, id)
}

// DeleteSelection operation middleware
func (siw *ServerInterfaceWrapper) DeleteSelection(c *gin.Context) {
	var table, id string
	if !siw.bindPath(c, "table", &table) || !siw.bindPath(c, "id", &id) {
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.DeleteSelection(c, table, id)
}

// ExportTable operation middleware
func (siw *ServerInterfaceWrapper) ExportTable(c *gin.Context) {
	var table string
	if !siw.bindPath(c, "table", &table) {
		return
	}

	var params ExportTableParams
	if !siw.bindSelection(c, &params.Selection) {
		return
	}

	if !siw.runMiddlewares(c) {
		return
	}
	siw.Handler.ExportTable(c, table, params)
}

// GinServerOptions provides options for the Gin server.
type GinServerOptions struct {
	BaseURL      string
	Middlewares  []MiddlewareFunc
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlers creates http.Handler with routing matching the API.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"error": err.Error()})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandler:       errorHandler,
	}

	router.GET(options.BaseURL+"/tables", wrapper.ListTables)
	router.GET(options.BaseURL+"/tables/:table/rows", wrapper.GetTableRows)
	router.PATCH(options.BaseURL+"/tables/:table/state", wrapper.PatchTableState)
	router.POST(options.BaseURL+"/tables/:table/selections", wrapper.CreateSelection)
	router.GET(options.BaseURL+"/tables/:table/selections/:id", wrapper.GetSelection)
	router.POST(options.BaseURL+"/tables/:table/selections/:id", wrapper.UpdateSelection)
	router.DELETE(options.BaseURL+"/tables/:table/selections/:id", wrapper.DeleteSelection)
	router.GET(options.BaseURL+"/tables/:table/export", wrapper.ExportTable)
}
