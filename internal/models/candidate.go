package models

import "time"

type CandidateStatus string

const (
	CandidateStatusApplied   CandidateStatus = "applied"
	CandidateStatusScreened  CandidateStatus = "screened"
	CandidateStatusQualified CandidateStatus = "qualified"
	CandidateStatusPlaced    CandidateStatus = "placed"
	CandidateStatusWithdrawn CandidateStatus = "withdrawn"
)

// Candidate is an applicant to a recruitment pool.
type Candidate struct {
	ID           string
	Name         string
	Email        string
	Pool         string
	DepartmentID string
	Department   string
	Status       CandidateStatus
	Score        int
	Skills       []string
	SkillIDs     []string
	AppliedAt    time.Time
}

type Skill struct {
	ID          string
	Name        string
	Category    string
	Description string
	Candidates  int
}

type Department struct {
	ID         string
	Name       string
	Acronym    string
	Candidates int
}
