package services

import (
	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

func candidateID(c models.Candidate) string { return c.ID }

var candidateColumns = []tablestate.Column[models.Candidate]{
	{ID: "name", Header: "Name", Accessor: func(c models.Candidate) any { return c.Name }, Sortable: true, Searchable: true, Pinned: true},
	{ID: "email", Header: "Email", Accessor: func(c models.Candidate) any { return c.Email }, Sortable: true, Searchable: true},
	{ID: "pool", Header: "Pool", Accessor: func(c models.Candidate) any { return c.Pool }, Sortable: true, Searchable: true},
	{ID: "department", Header: "Department", Accessor: func(c models.Candidate) any { return c.Department }, Sortable: true, Searchable: true},
	{ID: "status", Header: "Status", Accessor: func(c models.Candidate) any { return string(c.Status) }, Sortable: true, Searchable: true},
	{ID: "score", Header: "Score", Accessor: func(c models.Candidate) any { return c.Score }, Sortable: true},
	{ID: "appliedAt", Header: "Applied", Accessor: func(c models.Candidate) any { return c.AppliedAt }, Sortable: true},
	{ID: "skills", Header: "Skills", Accessor: func(c models.Candidate) any { return c.Skills }, Searchable: true},
}

var skillColumns = []tablestate.Column[models.Skill]{
	{ID: "name", Header: "Skill", Accessor: func(s models.Skill) any { return s.Name }, Sortable: true, Searchable: true, Pinned: true},
	{ID: "category", Header: "Category", Accessor: func(s models.Skill) any { return s.Category }, Sortable: true, Searchable: true},
	{ID: "description", Header: "Description", Accessor: func(s models.Skill) any { return s.Description }, Searchable: true},
	{ID: "candidates", Header: "Candidates", Accessor: func(s models.Skill) any { return s.Candidates }, Sortable: true},
}

var departmentColumns = []tablestate.Column[models.Department]{
	{ID: "name", Header: "Department", Accessor: func(d models.Department) any { return d.Name }, Sortable: true, Searchable: true, Pinned: true},
	{ID: "acronym", Header: "Acronym", Accessor: func(d models.Department) any { return d.Acronym }, Sortable: true, Searchable: true},
	{ID: "candidates", Header: "Candidates", Accessor: func(d models.Department) any { return d.Candidates }, Sortable: true},
}
