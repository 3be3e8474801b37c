package tablestate_test

import (
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

var _ = Describe("Codec", func() {
	Context("Sorting", func() {
		DescribeTable("should round-trip valid sortings",
			func(s tablestate.Sorting) {
				decoded := tablestate.DecodeSorting(tablestate.EncodeSorting(s))
				Expect(decoded.OK).To(BeTrue())
				Expect(decoded.Value.Equal(s)).To(BeTrue())
			},
			Entry("empty", tablestate.Sorting{}),
			Entry("ascending", tablestate.Sorting{{ColumnID: "name"}}),
			Entry("descending", tablestate.Sorting{{ColumnID: "submitted_at", Desc: true}}),
			Entry("two rules", tablestate.Sorting{{ColumnID: "pool"}, {ColumnID: "name", Desc: true}}),
		)

		It("should encode as a JSON array of id/desc", func() {
			Expect(tablestate.EncodeSorting(tablestate.Sorting{{ColumnID: "email", Desc: true}})).
				To(Equal(`[{"id":"email","desc":true}]`))
		})

		DescribeTable("should report malformed values as absent",
			func(raw string) {
				Expect(tablestate.DecodeSorting(raw).OK).To(BeFalse())
			},
			Entry("empty string", ""),
			Entry("not json", "name:asc"),
			Entry("object instead of array", `{"id":"name","desc":false}`),
			Entry("null", "null"),
			Entry("missing desc", `[{"id":"name"}]`),
			Entry("missing id", `[{"desc":true}]`),
			Entry("empty id", `[{"id":"","desc":true}]`),
			Entry("wrong id type", `[{"id":3,"desc":true}]`),
			Entry("wrong desc type", `[{"id":"name","desc":"yes"}]`),
		)
	})

	Context("Hidden columns", func() {
		It("should round-trip a set of ids", func() {
			h := tablestate.HiddenColumns{"email", "phone"}
			decoded := tablestate.DecodeHiddenColumns(tablestate.EncodeHiddenColumns(h))
			Expect(decoded.OK).To(BeTrue())
			Expect(decoded.Value.Equal(h)).To(BeTrue())
		})

		It("should discard empty segments", func() {
			decoded := tablestate.DecodeHiddenColumns(",email,,phone,")
			Expect(decoded.Value).To(Equal(tablestate.HiddenColumns{"email", "phone"}))
		})

		It("should decode an empty value as no hidden columns", func() {
			decoded := tablestate.DecodeHiddenColumns("")
			Expect(decoded.OK).To(BeTrue())
			Expect(decoded.Value).To(BeEmpty())
		})
	})

	Context("Pagination", func() {
		It("should add one when encoding the page index", func() {
			Expect(tablestate.EncodePage(0)).To(Equal("1"))
			Expect(tablestate.EncodePage(2)).To(Equal("3"))
		})

		It("should round-trip page index and size", func() {
			for _, p := range []tablestate.Pagination{{PageIndex: 0, PageSize: 10}, {PageIndex: 7, PageSize: 25}} {
				values := url.Values{
					"page":      {tablestate.EncodePage(p.PageIndex)},
					"page_size": {tablestate.EncodePageSize(p.PageSize)},
				}
				Expect(tablestate.DecodePage(values, "page")).To(Equal(tablestate.Decoded[int]{Value: p.PageIndex, OK: true}))
				Expect(tablestate.DecodePageSize(values, "page_size")).To(Equal(tablestate.Decoded[int]{Value: p.PageSize, OK: true}))
			}
		})

		DescribeTable("should report malformed pages as absent",
			func(raw string) {
				values := url.Values{"page": {raw}, "page_size": {raw}}
				Expect(tablestate.DecodePage(values, "page").OK).To(BeFalse())
				Expect(tablestate.DecodePageSize(values, "page_size").OK).To(BeFalse())
			},
			Entry("text", "two"),
			Entry("zero", "0"),
			Entry("negative", "-4"),
			Entry("fraction", "1.5"),
			Entry("empty", ""),
			Entry("beyond the row offset bound", "2147483648"),
			Entry("max int64", "9223372036854775807"),
		)

		It("should bound the page so the offset cannot overflow", func() {
			Expect(tablestate.Pagination{PageIndex: 9223372036854775806, PageSize: 10}.Valid()).To(BeFalse())
			Expect(tablestate.Pagination{PageIndex: 9223372036854775806, PageSize: 10}.Offset()).To(BeZero())
			Expect(tablestate.Pagination{PageIndex: tablestate.MaxRowOffset / 10, PageSize: 10}.Valid()).To(BeFalse())
			Expect(tablestate.Pagination{PageIndex: tablestate.MaxRowOffset/10 - 1, PageSize: 10}.Valid()).To(BeTrue())
		})

		It("should report missing keys as absent", func() {
			Expect(tablestate.DecodePage(url.Values{}, "page").OK).To(BeFalse())
		})
	})

	Context("Search", func() {
		It("should decode a global search when the column key is missing", func() {
			decoded := tablestate.DecodeSearch(url.Values{"search_term": {"alice"}}, tablestate.DefaultKeys)
			Expect(decoded.OK).To(BeTrue())
			Expect(decoded.Value).To(Equal(tablestate.Search{Term: "alice"}))
			Expect(decoded.Value.IsGlobal()).To(BeTrue())
		})

		It("should decode a column search", func() {
			values := url.Values{"search_term": {"alice"}, "search_column": {"email"}}
			decoded := tablestate.DecodeSearch(values, tablestate.DefaultKeys)
			Expect(decoded.Value).To(Equal(tablestate.Search{Term: "alice", Column: "email"}))
		})

		It("should treat a column without a term as absent", func() {
			decoded := tablestate.DecodeSearch(url.Values{"search_column": {"email"}}, tablestate.DefaultKeys)
			Expect(decoded.OK).To(BeFalse())
		})
	})

	Context("Keys", func() {
		It("should prefix every key", func() {
			keys := tablestate.KeysWithPrefix("pools")
			Expect(keys.All()).To(Equal([]string{
				"pools_sort_rule", "pools_search_column", "pools_search_term",
				"pools_hidden_columns", "pools_page", "pools_page_size",
			}))
		})

		It("should return the default keys for an empty prefix", func() {
			Expect(tablestate.KeysWithPrefix("")).To(Equal(tablestate.DefaultKeys))
		})
	})

	Context("DecodeQuery", func() {
		It("should decode each slice independently", func() {
			values := url.Values{
				"sort_rule":      {"garbage"},
				"search_term":    {"bob"},
				"hidden_columns": {"email"},
				"page":           {"x"},
				"page_size":      {"50"},
			}

			qs := tablestate.DecodeQuery(values, tablestate.DefaultKeys)

			Expect(qs.Sorting.OK).To(BeFalse())
			Expect(qs.Search.Value.Term).To(Equal("bob"))
			Expect(qs.HiddenColumns.Value).To(Equal(tablestate.HiddenColumns{"email"}))
			Expect(qs.PageIndex.OK).To(BeFalse())
			Expect(qs.PageSize.Value).To(Equal(50))
		})
	})
})
