package store_test

import (
	"context"
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/internal/store"
)

func seedFixtures(ctx context.Context, s *store.Store) {
	err := s.Department().Save(ctx,
		models.Department{ID: "d-1", Name: "Shared Services Canada", Acronym: "SSC"},
		models.Department{ID: "d-2", Name: "Employment and Social Development Canada", Acronym: "ESDC"},
	)
	Expect(err).NotTo(HaveOccurred())

	err = s.Skill().Save(ctx,
		models.Skill{ID: "s-1", Name: "Go", Category: "technical"},
		models.Skill{ID: "s-2", Name: "SQL", Category: "technical"},
	)
	Expect(err).NotTo(HaveOccurred())

	applied := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	err = s.Candidate().Save(ctx,
		models.Candidate{ID: "c-1", Name: "Alice Martin", Email: "alice.martin@example.gc.ca", Pool: "IT-01", DepartmentID: "d-1", Status: models.CandidateStatusQualified, Score: 80, SkillIDs: []string{"s-1", "s-2"}, AppliedAt: applied},
		models.Candidate{ID: "c-2", Name: "Bob Tremblay", Email: "bob.tremblay@example.gc.ca", Pool: "EC-04", DepartmentID: "d-2", Status: models.CandidateStatusApplied, Score: 65, SkillIDs: []string{"s-2"}, AppliedAt: applied.Add(24 * time.Hour)},
		models.Candidate{ID: "c-3", Name: "Chloé Roy", Email: "chloe.roy@example.gc.ca", Pool: "IT-01", DepartmentID: "d-1", Status: models.CandidateStatusScreened, Score: 92, AppliedAt: applied.Add(48 * time.Hour)},
		models.Candidate{ID: "c-4", Name: "David Lee", Email: "d_lee@example.gc.ca", Pool: "PM-02", Status: models.CandidateStatusPlaced, Score: 70, AppliedAt: applied.Add(72 * time.Hour)},
	)
	Expect(err).NotTo(HaveOccurred())
}

func candidateIDs(candidates []models.Candidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}

var _ = Describe("CandidateStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
		Expect(s.Migrate(ctx)).To(Succeed())

		seedFixtures(ctx, s)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("List", func() {
		// Given four candidates
		// When we list them with the default sort
		// Then they should come back ordered by id with their skills
		It("should list candidates with department and skills", func() {
			// Act
			candidates, err := s.Candidate().List(ctx, store.WithDefaultSort())

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-1", "c-2", "c-3", "c-4"}))
			Expect(candidates[0].Department).To(Equal("Shared Services Canada"))
			Expect(candidates[0].Skills).To(Equal([]string{"Go", "SQL"}))
			Expect(candidates[2].Skills).To(BeEmpty())
			Expect(candidates[3].DepartmentID).To(BeEmpty())
		})

		It("should sort by score descending", func() {
			candidates, err := s.Candidate().List(ctx, store.WithSort([]store.SortParam{{Field: "score", Desc: true}}))

			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-3", "c-1", "c-4", "c-2"}))
		})

		It("should ignore unknown sort fields", func() {
			candidates, err := s.Candidate().List(ctx, store.WithSort([]store.SortParam{{Field: "salary"}}))

			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-1", "c-2", "c-3", "c-4"}))
		})

		// Given four candidates sorted by name
		// When we request the second page of two
		// Then it should return the third and fourth names
		It("should paginate with limit and offset", func() {
			// Act
			candidates, err := s.Candidate().List(ctx,
				store.WithSort([]store.SortParam{{Field: "name"}}),
				store.WithLimit(2),
				store.WithOffset(2),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-3", "c-4"}))
		})

		It("should search several columns ignoring case", func() {
			candidates, err := s.Candidate().List(ctx, store.BySearch("TREMBLAY", "name", "email"), store.WithDefaultSort())

			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-2"}))
		})

		It("should search the joined department name", func() {
			candidates, err := s.Candidate().List(ctx, store.BySearch("shared", "department"), store.WithDefaultSort())

			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-1", "c-3"}))
		})

		It("should search candidates by skill name", func() {
			candidates, err := s.Candidate().List(ctx, store.BySearch("sq", "skills"), store.WithDefaultSort())
			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-1", "c-2"}))

			count, err := s.Candidate().Count(ctx, store.BySearch("GO", "name", "skills"))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("should search numeric columns by their text", func() {
			candidates, err := s.Candidate().List(ctx, store.BySearch("92", "score"))

			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-3"}))
		})

		It("should treat like wildcards literally", func() {
			candidates, err := s.Candidate().List(ctx, store.BySearch("%", "name", "email"))
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(BeEmpty())

			candidates, err = s.Candidate().List(ctx, store.BySearch("d_l", "email"))
			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-4"}))
		})

		It("should filter by ids and pools", func() {
			candidates, err := s.Candidate().List(ctx, store.ByIDs("c-2", "c-3", "c-4"), store.ByPools("IT-01", "PM-02"), store.WithDefaultSort())

			Expect(err).NotTo(HaveOccurred())
			Expect(candidateIDs(candidates)).To(Equal([]string{"c-3", "c-4"}))
		})
	})

	Context("Count", func() {
		It("should count every candidate", func() {
			count, err := s.Candidate().Count(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(4))
		})

		It("should count only matching candidates", func() {
			count, err := s.Candidate().Count(ctx, store.BySearch("it-01", "pool"))

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})

	Context("Save", func() {
		It("should update an existing candidate and replace its skills", func() {
			err := s.Candidate().Save(ctx, models.Candidate{
				ID: "c-1", Name: "Alice Martin-Roy", Email: "alice.martin@example.gc.ca", Pool: "IT-02",
				DepartmentID: "d-2", Status: models.CandidateStatusPlaced, Score: 81, SkillIDs: []string{"s-1"},
			})
			Expect(err).NotTo(HaveOccurred())

			candidates, err := s.Candidate().List(ctx, store.ByIDs("c-1"))
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].Name).To(Equal("Alice Martin-Roy"))
			Expect(candidates[0].Department).To(Equal("Employment and Social Development Canada"))
			Expect(candidates[0].Skills).To(Equal([]string{"Go"}))
		})
	})

	It("should expose sortable fields in order", func() {
		Expect(store.SortableFields()).To(Equal([]string{"appliedAt", "department", "email", "name", "pool", "score", "status"}))
	})
})

var _ = Describe("Reference stores", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
		Expect(s.Migrate(ctx)).To(Succeed())

		seedFixtures(ctx, s)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should list skills with candidate counts", func() {
		skills, err := s.Skill().List(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(skills).To(HaveLen(2))
		Expect(skills[0]).To(Equal(models.Skill{ID: "s-1", Name: "Go", Category: "technical", Candidates: 1}))
		Expect(skills[1].Candidates).To(Equal(2))
	})

	It("should list departments with candidate counts", func() {
		departments, err := s.Department().List(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(departments).To(HaveLen(2))
		Expect(departments[0].Acronym).To(Equal("ESDC"))
		Expect(departments[0].Candidates).To(Equal(1))
		Expect(departments[1].Candidates).To(Equal(2))
	})
})
