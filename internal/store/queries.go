package store

// Skill queries
const (
	queryListSkills = `
		SELECT s.id, s.name, s.category, s.description, COUNT(cs.candidate_id)
		FROM skills s
		LEFT JOIN candidate_skills cs ON cs.skill_id = s.id
		GROUP BY s.id, s.name, s.category, s.description
		ORDER BY s.name, s.id`

	queryInsertSkill = `
		INSERT INTO skills (id, name, category, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			description = EXCLUDED.description`
)

// Department queries
const (
	queryListDepartments = `
		SELECT d.id, d.name, d.acronym, COUNT(c.id)
		FROM departments d
		LEFT JOIN candidates c ON c.department_id = d.id
		GROUP BY d.id, d.name, d.acronym
		ORDER BY d.name, d.id`

	queryInsertDepartment = `
		INSERT INTO departments (id, name, acronym)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			acronym = EXCLUDED.acronym`
)

// Candidate queries
const (
	queryInsertCandidate = `
		INSERT INTO candidates (id, name, email, pool, department_id, status, score, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			pool = EXCLUDED.pool,
			department_id = EXCLUDED.department_id,
			status = EXCLUDED.status,
			score = EXCLUDED.score,
			applied_at = EXCLUDED.applied_at`

	queryDeleteCandidateSkills = `DELETE FROM candidate_skills WHERE candidate_id = ?`

	queryInsertCandidateSkill = `
		INSERT INTO candidate_skills (candidate_id, skill_id)
		VALUES (?, ?)`
)

// Selection queries
const (
	queryGetSelection = `
		SELECT created_at, updated_at
		FROM selections WHERE id = ? AND table_name = ?`

	queryListSelectionRows = `
		SELECT row_id FROM selection_rows
		WHERE selection_id = ? AND table_name = ?
		ORDER BY row_id`

	queryUpsertSelection = `
		INSERT INTO selections (id, table_name, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (id, table_name) DO UPDATE SET
			updated_at = now()`

	queryDeleteSelectionRows = `DELETE FROM selection_rows WHERE selection_id = ? AND table_name = ?`

	queryInsertSelectionRow = `
		INSERT INTO selection_rows (selection_id, table_name, row_id)
		VALUES (?, ?, ?)`

	queryDeleteSelection = `DELETE FROM selections WHERE id = ? AND table_name = ?`
)
