package store

import (
	"context"
	"database/sql"
	"maps"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/gctalent/talent-backoffice/internal/models"
)

type CandidateStore struct {
	db QueryInterceptor
}

func NewCandidateStore(db QueryInterceptor) *CandidateStore {
	return &CandidateStore{db: db}
}

func (s *CandidateStore) List(ctx context.Context, opts ...ListOption) ([]models.Candidate, error) {
	builder := sq.Select(
		"c.id",
		"c.name",
		"c.email",
		"c.pool",
		"COALESCE(c.department_id, '')",
		"COALESCE(d.name, '')",
		"c.status",
		"c.score",
		"c.applied_at",
		"LIST(s.name ORDER BY s.name) AS skills",
	).From("candidates c").
		LeftJoin("departments d ON d.id = c.department_id").
		LeftJoin("candidate_skills cs ON cs.candidate_id = c.id").
		LeftJoin("skills s ON s.id = cs.skill_id").
		GroupBy(
			"c.id",
			"c.name",
			"c.email",
			"c.pool",
			"c.department_id",
			"d.name",
			"c.status",
			"c.score",
			"c.applied_at",
		)

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var status string
		var skills any
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Pool,
			&c.DepartmentID,
			&c.Department,
			&status,
			&c.Score,
			&c.AppliedAt,
			&skills,
		)
		if err != nil {
			return nil, err
		}
		c.Status = models.CandidateStatus(status)
		c.Skills = toStringSlice(skills)
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// Count takes filter options only.
func (s *CandidateStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").
		From("candidates c").
		LeftJoin("departments d ON d.id = c.department_id")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Save inserts or updates candidates and replaces their skills with
// SkillIDs.
func (s *CandidateStore) Save(ctx context.Context, candidates ...models.Candidate) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range candidates {
		appliedAt := c.AppliedAt
		if appliedAt.IsZero() {
			appliedAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, queryInsertCandidate,
			c.ID, c.Name, c.Email, c.Pool, nullString(c.DepartmentID), string(c.Status), c.Score, appliedAt,
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, queryDeleteCandidateSkills, c.ID); err != nil {
			return err
		}
		for _, skillID := range slices.Compact(slices.Sorted(slices.Values(c.SkillIDs))) {
			if _, err := tx.ExecContext(ctx, queryInsertCandidateSkill, c.ID, skillID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// BySearch keeps rows where any of the given columns contains term, ignoring
// case. Non-text columns are matched on their text form. Unknown columns are
// skipped.
func BySearch(term string, columns ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if term == "" {
			return b
		}
		pattern := "%" + escapeLike(term) + "%"
		var or sq.Or
		for _, col := range columns {
			if expr, ok := searchFieldToExpr[col]; ok {
				or = append(or, sq.Expr(expr, pattern))
				continue
			}
			dbCol, ok := searchFieldToDBColumn[col]
			if !ok {
				sortCol, ok := apiFieldToDBColumn[col]
				if !ok {
					continue
				}
				dbCol = "CAST(" + sortCol + " AS VARCHAR)"
			}
			or = append(or, sq.Expr(dbCol+` ILIKE ? ESCAPE '\'`, pattern))
		}
		if len(or) == 0 {
			return b
		}
		return b.Where(or)
	}
}

func ByIDs(ids ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"c.id": ids})
	}
}

func ByPools(pools ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(pools) == 0 {
			return b
		}
		return b.Where(sq.Eq{"c.pool": pools})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

type SortParam struct {
	Field string
	Desc  bool
}

var apiFieldToDBColumn = map[string]string{
	"name":       "c.name",
	"email":      "c.email",
	"pool":       "c.pool",
	"department": "d.name",
	"status":     "c.status",
	"score":      "c.score",
	"appliedAt":  "c.applied_at",
}

var searchFieldToDBColumn = map[string]string{
	"name":       "c.name",
	"email":      "c.email",
	"pool":       "c.pool",
	"department": "d.name",
	"status":     "c.status",
}

// searchFieldToExpr holds fields that are aggregated in List and therefore
// searched through a subquery.
var searchFieldToExpr = map[string]string{
	"skills": `c.id IN (
		SELECT cs2.candidate_id FROM candidate_skills cs2
		JOIN skills s2 ON s2.id = cs2.skill_id
		WHERE s2.name ILIKE ? ESCAPE '\')`,
}

// SortableFields returns the fields accepted by WithSort.
func SortableFields() []string {
	return slices.Sorted(maps.Keys(apiFieldToDBColumn))
}

func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("c.id")
	}
}

// WithSort applies the sorts in order. The candidate id is always appended
// as a tie-breaker so pages are stable.
func WithSort(sorts []SortParam) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		var orderClauses []string
		for _, s := range sorts {
			col, ok := apiFieldToDBColumn[s.Field]
			if !ok {
				continue
			}
			if s.Desc {
				orderClauses = append(orderClauses, col+" DESC")
			} else {
				orderClauses = append(orderClauses, col+" ASC")
			}
		}
		orderClauses = append(orderClauses, "c.id")
		return b.OrderBy(orderClauses...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toStringSlice(v any) []string {
	if v == nil {
		return []string{}
	}
	slice, ok := v.([]any)
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if item == nil {
			continue
		}
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
