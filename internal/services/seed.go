package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/internal/store"
)

// seedNamespace makes demo ids stable across runs.
var seedNamespace = uuid.MustParse("6f1c8a52-4a0e-4c1b-9a51-2f0c8e2b7d10")

var (
	seedDepartments = []models.Department{
		{Name: "Shared Services Canada", Acronym: "SSC"},
		{Name: "Employment and Social Development Canada", Acronym: "ESDC"},
		{Name: "Treasury Board of Canada Secretariat", Acronym: "TBS"},
		{Name: "Canada Revenue Agency", Acronym: "CRA"},
		{Name: "Statistics Canada", Acronym: "StatCan"},
		{Name: "Natural Resources Canada", Acronym: "NRCan"},
	}

	seedSkills = []models.Skill{
		{Name: "Go", Category: "technical", Description: "Backend services in Go"},
		{Name: "SQL", Category: "technical", Description: "Relational databases"},
		{Name: "Kubernetes", Category: "technical", Description: "Container orchestration"},
		{Name: "Accessibility", Category: "technical", Description: "WCAG audits and remediation"},
		{Name: "Data analysis", Category: "technical", Description: "Statistics and reporting"},
		{Name: "Project management", Category: "behavioural", Description: "Planning and delivery"},
		{Name: "Leadership", Category: "behavioural", Description: "Leading teams"},
		{Name: "Client service", Category: "behavioural", Description: "Serving the public"},
		{Name: "French", Category: "language", Description: "Second language, level C"},
		{Name: "English", Category: "language", Description: "Second language, level C"},
	}

	seedFirstNames = []string{"Alice", "Benoît", "Chloé", "David", "Émilie", "Farid", "Gabrielle", "Hiroshi", "Isabelle", "Jonah", "Kateri", "Liam"}
	seedLastNames  = []string{"Martin", "Tremblay", "Roy", "Gagnon", "Lee", "Wilson", "Côté", "Singh", "Bouchard", "Nguyen"}
	seedPools      = []string{"IT-01", "IT-02", "IT-03", "EC-04", "PM-02", "AS-03"}
	seedStatuses   = []models.CandidateStatus{
		models.CandidateStatusApplied,
		models.CandidateStatusScreened,
		models.CandidateStatusQualified,
		models.CandidateStatusPlaced,
		models.CandidateStatusWithdrawn,
	}
)

// SeedService loads demo data.
type SeedService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func NewSeedService(st *store.Store) *SeedService {
	return &SeedService{store: st, log: zap.S().Named("seed_service")}
}

// SeedIfEmpty seeds n candidates when there are none.
func (s *SeedService) SeedIfEmpty(ctx context.Context, n int) (bool, error) {
	count, err := s.store.Candidate().Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.log.Debugw("database already has candidates, skipping seed", "count", count)
		return false, nil
	}
	return true, s.Seed(ctx, n)
}

// Seed writes the demo departments, skills and n candidates. Ids are derived
// from names so seeding twice updates the same rows.
func (s *SeedService) Seed(ctx context.Context, n int) error {
	departments := make([]models.Department, 0, len(seedDepartments))
	for _, d := range seedDepartments {
		d.ID = seedID("department", d.Acronym)
		departments = append(departments, d)
	}
	if err := s.store.Department().Save(ctx, departments...); err != nil {
		return fmt.Errorf("failed to seed departments: %w", err)
	}

	skills := make([]models.Skill, 0, len(seedSkills))
	for _, sk := range seedSkills {
		sk.ID = seedID("skill", sk.Name)
		skills = append(skills, sk)
	}
	if err := s.store.Skill().Save(ctx, skills...); err != nil {
		return fmt.Errorf("failed to seed skills: %w", err)
	}

	candidates := make([]models.Candidate, 0, n)
	base := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	for i := range n {
		first := seedFirstNames[i%len(seedFirstNames)]
		last := seedLastNames[(i/len(seedFirstNames))%len(seedLastNames)]
		email := fmt.Sprintf("%s.%s.%d@example.gc.ca", asciiLower(first), asciiLower(last), i)

		c := models.Candidate{
			ID:        seedID("candidate", email),
			Name:      first + " " + last,
			Email:     email,
			Pool:      seedPools[(i*7)%len(seedPools)],
			Status:    seedStatuses[(i*3)%len(seedStatuses)],
			Score:     (i * 37) % 101,
			AppliedAt: base.Add(time.Duration(i*13) * time.Hour),
		}
		if i%9 != 0 {
			c.DepartmentID = departments[i%len(departments)].ID
		}
		for k := range 1 + i%3 {
			c.SkillIDs = append(c.SkillIDs, skills[(i+k*4)%len(skills)].ID)
		}
		candidates = append(candidates, c)
	}
	if err := s.store.Candidate().Save(ctx, candidates...); err != nil {
		return fmt.Errorf("failed to seed candidates: %w", err)
	}

	s.log.Infow("demo data seeded", "departments", len(departments), "skills", len(skills), "candidates", n)
	return nil
}

func seedID(kind, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+key)).String()
}

var accents = strings.NewReplacer("é", "e", "è", "e", "ê", "e", "É", "e", "ô", "o", "î", "i", "ç", "c", "à", "a")

func asciiLower(s string) string {
	return strings.ToLower(accents.Replace(s))
}
