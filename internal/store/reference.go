package store

import (
	"context"

	"github.com/gctalent/talent-backoffice/internal/models"
)

// SkillStore reads the skill catalogue. Skills are small enough to be listed
// whole.
type SkillStore struct {
	db QueryInterceptor
}

func NewSkillStore(db QueryInterceptor) *SkillStore {
	return &SkillStore{db: db}
}

func (s *SkillStore) List(ctx context.Context) ([]models.Skill, error) {
	rows, err := s.db.QueryContext(ctx, queryListSkills)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var sk models.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Description, &sk.Candidates); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func (s *SkillStore) Save(ctx context.Context, skills ...models.Skill) error {
	for _, sk := range skills {
		if _, err := s.db.ExecContext(ctx, queryInsertSkill, sk.ID, sk.Name, sk.Category, sk.Description); err != nil {
			return err
		}
	}
	return nil
}

type DepartmentStore struct {
	db QueryInterceptor
}

func NewDepartmentStore(db QueryInterceptor) *DepartmentStore {
	return &DepartmentStore{db: db}
}

func (s *DepartmentStore) List(ctx context.Context) ([]models.Department, error) {
	rows, err := s.db.QueryContext(ctx, queryListDepartments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Acronym, &d.Candidates); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *DepartmentStore) Save(ctx context.Context, departments ...models.Department) error {
	for _, d := range departments {
		if _, err := s.db.ExecContext(ctx, queryInsertDepartment, d.ID, d.Name, d.Acronym); err != nil {
			return err
		}
	}
	return nil
}
