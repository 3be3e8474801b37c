package tablestate_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

var _ = Describe("MemoryEngine", func() {
	var engine *tablestate.MemoryEngine[applicant]

	BeforeEach(func() {
		engine = tablestate.NewMemoryEngine(applicantColumns, applicants(12), tablestate.Modes{})
	})

	It("should apply search, sort and pagination in order", func() {
		state := tablestate.DefaultViewState()
		state.Search = tablestate.Search{Term: "it-01", Column: "pool"}
		state.Sorting = tablestate.Sorting{{ColumnID: "name", Desc: true}}
		state.Pagination = tablestate.Pagination{PageIndex: 0, PageSize: 3}
		engine.SetState(state)

		ids := []string{}
		for _, r := range engine.VisibleRows() {
			ids = append(ids, r.ID)
		}
		Expect(ids).To(Equal([]string{"id-09", "id-06", "id-03"}))
		Expect(engine.FilteredRowCount()).To(Equal(4))
	})

	It("should keep the original order for equal values", func() {
		state := tablestate.DefaultViewState()
		state.Sorting = tablestate.Sorting{{ColumnID: "pool"}}
		state.Pagination = tablestate.Pagination{PageIndex: 0, PageSize: 20}
		engine.SetState(state)

		rows := engine.VisibleRows()
		Expect(rows[0].ID).To(Equal("id-01"))
		Expect(rows[1].ID).To(Equal("id-04"))
	})

	It("should return an empty page past the end", func() {
		state := tablestate.DefaultViewState()
		state.Pagination = tablestate.Pagination{PageIndex: 5, PageSize: 10}
		engine.SetState(state)

		Expect(engine.VisibleRows()).To(BeEmpty())
		Expect(engine.FilteredRowCount()).To(Equal(12))
	})

	It("should recompute after the data is replaced", func() {
		Expect(engine.FilteredRowCount()).To(Equal(12))

		engine.SetData(applicants(4))

		Expect(engine.FilteredRowCount()).To(Equal(4))
	})

	It("should ignore sort rules on unsortable or unknown columns", func() {
		state := tablestate.DefaultViewState()
		state.Sorting = tablestate.Sorting{{ColumnID: "ghost", Desc: true}}
		engine.SetState(state)

		Expect(engine.VisibleRows()[0].ID).To(Equal("id-00"))
	})

	It("should keep pinned columns visible", func() {
		state := tablestate.DefaultViewState()
		state.HiddenColumns = tablestate.HiddenColumns{"name", "email"}
		engine.SetState(state)

		Expect(tablestate.ColumnIDs(engine.VisibleColumns())).To(Equal([]string{"name", "pool", "score"}))
	})
})

var _ = Describe("CompareValues", func() {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	DescribeTable("should order values",
		func(a, b any, want int) {
			Expect(tablestate.CompareValues(a, b)).To(Equal(want))
		},
		Entry("strings ignore case", "alice", "Bob", -1),
		Entry("ints", 10, 2, 1),
		Entry("int64s", int64(3), int64(3), 0),
		Entry("nil first", nil, "a", -1),
		Entry("NaN last", math.NaN(), 1.0, 1),
		Entry("bools", false, true, -1),
		Entry("times", day, day.Add(time.Hour), -1),
		Entry("mixed types by text", 10, "9", -1),
	)
})
