package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	"github.com/gctalent/talent-backoffice/internal/services"
	srvErrors "github.com/gctalent/talent-backoffice/pkg/errors"
)

var _ v1.ServerInterface = (*Handler)(nil)

type Handler struct {
	tables     *services.TableService
	selections *services.SelectionService
	export     *services.ExportService
}

func New(tables *services.TableService, selections *services.SelectionService, export *services.ExportService) *Handler {
	return &Handler{
		tables:     tables,
		selections: selections,
		export:     export,
	}
}

// handleError maps service errors to status codes. Unexpected errors are
// logged and answered with msg.
func handleError(c *gin.Context, log *zap.SugaredLogger, err error, msg string) {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsInvalidArgumentError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Errorw(msg, "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// rowsURL returns the rows resource of table with the request query. The
// view state of every table endpoint is read from and written to it.
func rowsURL(c *gin.Context, table string) *url.URL {
	u := *c.Request.URL
	base, _, _ := strings.Cut(u.Path, "/tables/")
	u.Path = base + "/tables/" + table + "/rows"
	u.RawPath = ""
	return &u
}
