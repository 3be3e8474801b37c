package store

import (
	"context"
	"database/sql"

	"github.com/gctalent/talent-backoffice/internal/store/migrations"
)

// Store provides access to all storage repositories.
type Store struct {
	db          *sql.DB
	candidates  *CandidateStore
	skills      *SkillStore
	departments *DepartmentStore
	selections  *SelectionStore
}

func NewStore(db *sql.DB) *Store {
	qi := NewQueryInterceptor(db)
	return &Store{
		db:          db,
		candidates:  NewCandidateStore(qi),
		skills:      NewSkillStore(qi),
		departments: NewDepartmentStore(qi),
		selections:  NewSelectionStore(qi),
	}
}

func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

func (s *Store) Candidate() *CandidateStore {
	return s.candidates
}

func (s *Store) Skill() *SkillStore {
	return s.skills
}

func (s *Store) Department() *DepartmentStore {
	return s.departments
}

func (s *Store) Selection() *SelectionStore {
	return s.selections
}

func (s *Store) Close() error {
	return s.db.Close()
}
