package main

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	srvErrors "github.com/gctalent/talent-backoffice/pkg/errors"
	"github.com/gctalent/talent-backoffice/test/e2e/service"
)

var _ = BeforeSuite(func(ctx context.Context) {
	Expect(infraManager.Start(ctx)).To(Succeed())
})

var _ = AfterSuite(func() {
	Expect(infraManager.Stop()).To(Succeed())
})

func cellValue(row v1.TableView, index int, column string) any {
	for _, c := range row.Model.Rows[index].Cells {
		if c.ColumnID == column {
			return c.Value
		}
	}
	return nil
}

var _ = Describe("Candidates table", Ordered, func() {
	var svc *service.BackofficeSvc

	BeforeAll(func() {
		var err error
		svc, err = service.NewBackofficeSvc(infraManager.APIURL(), "candidates")
		Expect(err).NotTo(HaveOccurred())
	})

	// Given a fresh visit without query
	// When the table is opened
	// Then the preset view is shown and the URL stays empty
	It("should open the preset view", func(ctx context.Context) {
		view, err := svc.Open(ctx, "")

		Expect(err).NotTo(HaveOccurred())
		Expect(view.Query).To(BeEmpty())
		Expect(view.Model.Rows).To(HaveLen(10))
		Expect(view.Model.Pagination.Total).To(BeNumerically(">=", 50))
		Expect(view.State.HiddenColumns).To(ContainElement("skills"))
	})

	It("should reset the page when the search changes", func(ctx context.Context) {
		// Arrange
		view, err := svc.GoToPage(ctx, 2, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Query).To(Equal("page=3"))

		// Act
		view, err = svc.Search(ctx, "Roy", "")

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Query).To(Equal("search_term=Roy"))
		Expect(view.State.Pagination.PageIndex).To(Equal(0))
		for _, row := range view.Model.Rows {
			Expect(row.Cells[0].Text).To(ContainSubstring("Roy"))
		}
	})

	It("should sort by score ascending then descending", func(ctx context.Context) {
		// Act
		asc, err := svc.ToggleSort(ctx, "score")
		Expect(err).NotTo(HaveOccurred())
		desc, err := svc.ToggleSort(ctx, "score")
		Expect(err).NotTo(HaveOccurred())

		// Assert
		Expect(asc.Query).To(ContainSubstring("sort_rule="))
		Expect(desc.Query).To(ContainSubstring("sort_rule="))
		if len(asc.Model.Rows) > 1 {
			Expect(cellValue(*asc, 0, "score")).To(BeNumerically("<=", cellValue(*asc, 1, "score")))
			Expect(cellValue(*desc, 0, "score")).To(BeNumerically(">=", cellValue(*desc, 1, "score")))
		}
	})

	// Given a link copied from the address bar
	// When it is opened in a new session
	// Then the same rows are rendered
	It("should restore a shared link", func(ctx context.Context) {
		// Arrange
		shared := svc.Query()
		other, err := service.NewBackofficeSvc(infraManager.APIURL(), "candidates")
		Expect(err).NotTo(HaveOccurred())

		// Act
		restored, err := other.Open(ctx, shared)
		Expect(err).NotTo(HaveOccurred())
		current, err := svc.Open(ctx, shared)
		Expect(err).NotTo(HaveOccurred())

		// Assert
		Expect(restored.Query).To(Equal(shared))
		Expect(restored.Model.Rows).To(Equal(current.Model.Rows))
	})

	It("should export a page selection", func(ctx context.Context) {
		// Arrange
		view, err := svc.Reset(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Query).To(BeEmpty())

		sel, err := svc.SelectPage(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(sel.RowIds).To(HaveLen(10))

		// Act
		data, err := svc.Export(ctx, sel.Id)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		f, err := excelize.OpenReader(bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = f.Close() }()
		rows, err := f.GetRows(f.GetSheetName(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(11))
		Expect(strings.Join(rows[0], ",")).NotTo(ContainSubstring("Skills"))

		Expect(svc.Client().DeleteSelection(ctx, "candidates", sel.Id)).To(Succeed())
	})

	It("should reject an unsortable column", func(ctx context.Context) {
		_, err := svc.ToggleSort(ctx, "skills")

		Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
	})
})

var _ = Describe("Reference tables", func() {
	It("should filter skills in memory", func(ctx context.Context) {
		// Arrange
		svc, err := service.NewBackofficeSvc(infraManager.APIURL(), "skills")
		Expect(err).NotTo(HaveOccurred())

		// Act
		view, err := svc.Search(ctx, "go", "name")

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Query).To(ContainSubstring("search_column=name"))
		Expect(view.Model.Rows).NotTo(BeEmpty())
	})

	It("should report an unknown table", func(ctx context.Context) {
		svc, err := service.NewBackofficeSvc(infraManager.APIURL(), "payroll")
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Open(ctx, "")

		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})
})
