package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	"github.com/gctalent/talent-backoffice/internal/config"
	"github.com/gctalent/talent-backoffice/internal/handlers"
	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/internal/services"
	"github.com/gctalent/talent-backoffice/internal/store"
	"github.com/gctalent/talent-backoffice/internal/util"
	"github.com/gctalent/talent-backoffice/pkg/scheduler"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

func seedFixtures(ctx context.Context, s *store.Store) {
	err := s.Department().Save(ctx,
		models.Department{ID: "d-1", Name: "Shared Services Canada", Acronym: "SSC"},
	)
	Expect(err).NotTo(HaveOccurred())

	applied := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	err = s.Candidate().Save(ctx,
		models.Candidate{ID: "c-1", Name: "Alice Martin", Email: "alice.martin@example.gc.ca", Pool: "IT-01", DepartmentID: "d-1", Status: models.CandidateStatusQualified, Score: 80, AppliedAt: applied},
		models.Candidate{ID: "c-2", Name: "Bob Tremblay", Email: "bob.tremblay@example.gc.ca", Pool: "EC-04", Status: models.CandidateStatusApplied, Score: 65, AppliedAt: applied.Add(24 * time.Hour)},
		models.Candidate{ID: "c-3", Name: "Chloé Roy", Email: "chloe.roy@example.gc.ca", Pool: "IT-01", DepartmentID: "d-1", Status: models.CandidateStatusScreened, Score: 92, AppliedAt: applied.Add(48 * time.Hour)},
	)
	Expect(err).NotTo(HaveOccurred())
}

var _ = Describe("Handlers", func() {
	var (
		ctx    context.Context
		db     *sql.DB
		sched  *scheduler.Scheduler
		router *gin.Engine
	)

	do := func(method, target string, body any) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, target, reader)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder, v any) {
		Expect(json.Unmarshal(w.Body.Bytes(), v)).To(Succeed())
	}

	BeforeEach(func() {
		ctx = context.Background()
		gin.SetMode(gin.TestMode)

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		st := store.NewStore(db)
		Expect(st.Migrate(ctx)).To(Succeed())
		seedFixtures(ctx, st)

		sched = scheduler.NewScheduler(2)
		limits := services.TableLimits{MaxPageSize: 50, ExportMaxRows: 100}
		tables := services.NewTableService(st, services.NewCandidateService(st, sched), config.DefaultPresets(), limits)
		selections := services.NewSelectionService(st, tables)
		h := handlers.New(tables, selections, services.NewExportService(tables, selections))

		router = gin.New()
		v1.RegisterHandlers(router.Group("/api/v1"), h)
	})

	AfterEach(func() {
		sched.Close()
		_ = db.Close()
	})

	Context("ListTables", func() {
		It("should return the table definitions", func() {
			// Act
			w := do(http.MethodGet, "/api/v1/tables", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			var resp v1.TableList
			decode(w, &resp)
			Expect(resp.Tables).To(HaveLen(3))
			Expect(resp.Tables[0].Name).To(Equal("candidates"))
			Expect(resp.Tables[0].Mode).To(Equal(v1.TableModeServer))
		})
	})

	Context("GetTableRows", func() {
		// Given a query with a default page and a malformed page size
		// When the rows are requested
		// Then the canonical URL drops both
		It("should return the canonical location", func() {
			// Act
			w := do(http.MethodGet, "/api/v1/tables/candidates/rows?page=1&page_size=abc&search_term=roy", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Location")).To(Equal("/api/v1/tables/candidates/rows?search_term=roy"))

			var view v1.TableView
			decode(w, &view)
			Expect(view.Query).To(Equal("search_term=roy"))
			Expect(view.Model.Rows).To(HaveLen(1))
			Expect(view.Model.Rows[0].ID).To(Equal("c-3"))
		})

		It("should seed the selection from a stored one", func() {
			// Arrange
			w := do(http.MethodPost, "/api/v1/tables/candidates/selections/sel-1", v1.SelectionRequest{RowIds: []string{"c-1"}})
			Expect(w.Code).To(Equal(http.StatusOK))

			// Act
			w = do(http.MethodGet, "/api/v1/tables/candidates/rows?selection=sel-1", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			var view v1.TableView
			decode(w, &view)
			Expect(view.Model.Selection.SelectedIDs).To(Equal([]string{"c-1"}))
			Expect(view.Query).To(Equal("selection=sel-1"))
		})

		DescribeTable("should serve the first page when the page overflows",
			func(table string) {
				// Act
				w := do(http.MethodGet, "/api/v1/tables/"+table+"/rows?page=9223372036854775807", nil)

				// Assert
				Expect(w.Code).To(Equal(http.StatusOK))
				var view v1.TableView
				decode(w, &view)
				Expect(view.Query).To(BeEmpty())
				Expect(view.State.Pagination.PageIndex).To(Equal(0))
			},
			Entry("server driven", "candidates"),
			Entry("in memory", "skills"),
		)

		It("should return 404 for an unknown table", func() {
			// Act
			w := do(http.MethodGet, "/api/v1/tables/vms/rows", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("error"))
		})
	})

	Context("PatchTableState", func() {
		// Given the second page in the query
		// When the search changes
		// Then the location points at the first page of the rows
		It("should apply the patch and return the rows location", func() {
			// Arrange
			patch := v1.StatePatch{Search: &tablestate.Search{Term: "it-01", Column: "pool"}}

			// Act
			w := do(http.MethodPatch, "/api/v1/tables/candidates/state?page=2&page_size=1", patch)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			loc, err := url.Parse(w.Header().Get("Content-Location"))
			Expect(err).NotTo(HaveOccurred())
			Expect(loc.Path).To(Equal("/api/v1/tables/candidates/rows"))
			Expect(loc.Query().Has("page")).To(BeFalse())
			Expect(loc.Query().Get("search_column")).To(Equal("pool"))

			var view v1.TableView
			decode(w, &view)
			Expect(view.State.Pagination.PageIndex).To(Equal(0))
			Expect(view.Model.Pagination.Total).To(Equal(2))
		})

		It("should return 400 for a non sortable column", func() {
			// Arrange
			patch := v1.StatePatch{Sorting: &tablestate.Sorting{{ColumnID: "skills"}}}

			// Act
			w := do(http.MethodPatch, "/api/v1/tables/candidates/state", patch)

			// Assert
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a search on a column that is not searchable", func() {
			// Arrange
			patch := v1.StatePatch{Search: &tablestate.Search{Term: "7", Column: "score"}}

			// Act
			w := do(http.MethodPatch, "/api/v1/tables/candidates/state", patch)

			// Assert
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("not searchable"))
		})

		It("should return 400 for a malformed body", func() {
			// Arrange
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/tables/candidates/state", strings.NewReader("{"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("Selections", func() {
		It("should create a selection with a new id", func() {
			// Act
			w := do(http.MethodPost, "/api/v1/tables/candidates/selections?page_size=2", v1.SelectionRequest{Page: util.Ptr(true)})

			// Assert
			Expect(w.Code).To(Equal(http.StatusCreated))
			var sel v1.Selection
			decode(w, &sel)
			Expect(sel.Id).NotTo(BeEmpty())
			Expect(sel.RowIds).To(Equal([]string{"c-2", "c-3"}))
			Expect(sel.View).NotTo(BeNil())
			Expect(sel.View.Query).To(Equal("page_size=2"))
		})

		// Given a stored selection
		// When the first row of the page is deselected
		// Then the selection keeps the other rows
		It("should deselect by index", func() {
			// Arrange
			w := do(http.MethodPost, "/api/v1/tables/candidates/selections/sel-1", v1.SelectionRequest{RowIds: []string{"c-1", "c-3"}})
			Expect(w.Code).To(Equal(http.StatusOK))

			// Act
			w = do(http.MethodPost, "/api/v1/tables/candidates/selections/sel-1", v1.SelectionRequest{Indexes: []int{0}, Selected: util.Ptr(false)})

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			w = do(http.MethodGet, "/api/v1/tables/candidates/selections/sel-1", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			var sel v1.Selection
			decode(w, &sel)
			Expect(sel.RowIds).To(Equal([]string{"c-1"}))
			Expect(sel.View).To(BeNil())
		})

		It("should delete a selection", func() {
			// Arrange
			w := do(http.MethodPost, "/api/v1/tables/candidates/selections/sel-1", v1.SelectionRequest{RowIds: []string{"c-1"}})
			Expect(w.Code).To(Equal(http.StatusOK))

			// Act
			w = do(http.MethodDelete, "/api/v1/tables/candidates/selections/sel-1", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusNoContent))
			w = do(http.MethodGet, "/api/v1/tables/candidates/selections/sel-1", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 404 when deleting an unknown selection", func() {
			// Act
			w := do(http.MethodDelete, "/api/v1/tables/candidates/selections/missing", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for an index outside the page", func() {
			// Act
			w := do(http.MethodPost, "/api/v1/tables/candidates/selections/sel-1", v1.SelectionRequest{Indexes: []int{9}})

			// Assert
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("ExportTable", func() {
		It("should return an xlsx of the selection", func() {
			// Arrange
			w := do(http.MethodPost, "/api/v1/tables/candidates/selections/sel-1", v1.SelectionRequest{RowIds: []string{"c-2"}})
			Expect(w.Code).To(Equal(http.StatusOK))

			// Act
			w = do(http.MethodGet, "/api/v1/tables/candidates/export?selection=sel-1", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
			Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="candidates.xlsx"`))

			f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = f.Close() }()
			rows, err := f.GetRows("Candidates")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[1][0]).To(Equal("Bob Tremblay"))
		})

		It("should return 404 for an unknown selection", func() {
			// Act
			w := do(http.MethodGet, "/api/v1/tables/candidates/export?selection=missing", nil)

			// Assert
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
