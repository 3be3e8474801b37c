package services

import (
	"context"
	"strings"

	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/internal/store"
	"github.com/gctalent/talent-backoffice/pkg/scheduler"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

type CandidateService struct {
	store *store.Store
	sched *scheduler.Scheduler
}

func NewCandidateService(st *store.Store, sched *scheduler.Scheduler) *CandidateService {
	return &CandidateService{store: st, sched: sched}
}

type CandidateListParams struct {
	SearchTerm    string
	SearchColumns []string
	Pools         []string
	Sort          []store.SortParam
	Limit         uint64
	Offset        uint64
}

type CandidateListResult struct {
	Candidates []models.Candidate
	Total      int
}

// List returns one page of candidates and the number of candidates matching
// the filters. Both queries run concurrently on the scheduler.
func (s *CandidateService) List(ctx context.Context, params CandidateListParams) (*CandidateListResult, error) {
	opts := s.buildListOptions(params)

	// Get total count without pagination
	countOpts := s.buildFilterOptions(params)

	rows := scheduler.Submit(ctx, s.sched, "candidates.list", func(ctx context.Context) ([]models.Candidate, error) {
		return s.store.Candidate().List(ctx, opts...)
	})
	count := scheduler.Submit(ctx, s.sched, "candidates.count", func(ctx context.Context) (int, error) {
		return s.store.Candidate().Count(ctx, countOpts...)
	})

	results, err := scheduler.Await(ctx, rows, count)
	if err != nil {
		return nil, err
	}

	return &CandidateListResult{
		Candidates: results[0].([]models.Candidate),
		Total:      results[1].(int),
	}, nil
}

// ByIDs returns the candidates with the given ids, ordered by id.
func (s *CandidateService) ByIDs(ctx context.Context, ids []string) ([]models.Candidate, error) {
	if len(ids) == 0 {
		return []models.Candidate{}, nil
	}
	return s.store.Candidate().List(ctx, store.ByIDs(ids...), store.WithDefaultSort())
}

func (s *CandidateService) buildFilterOptions(params CandidateListParams) []store.ListOption {
	var opts []store.ListOption

	if term := strings.TrimSpace(params.SearchTerm); term != "" {
		opts = append(opts, store.BySearch(term, params.SearchColumns...))
	}
	if len(params.Pools) > 0 {
		opts = append(opts, store.ByPools(params.Pools...))
	}

	return opts
}

func (s *CandidateService) buildListOptions(params CandidateListParams) []store.ListOption {
	opts := s.buildFilterOptions(params)

	if len(params.Sort) > 0 {
		opts = append(opts, store.WithSort(params.Sort))
	} else {
		opts = append(opts, store.WithDefaultSort())
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	return opts
}

// candidateParams translates a view state into list parameters. A global
// search runs over the searchable columns.
func candidateParams(state tablestate.ViewState, searchable []string) CandidateListParams {
	params := CandidateListParams{
		SearchTerm: state.Search.Term,
		Limit:      uint64(state.Pagination.PageSize),
		Offset:     uint64(state.Pagination.Offset()),
	}
	if state.Search.IsGlobal() {
		params.SearchColumns = searchable
	} else {
		params.SearchColumns = []string{state.Search.Column}
	}
	for _, rule := range state.Sorting {
		params.Sort = append(params.Sort, store.SortParam{Field: rule.ColumnID, Desc: rule.Desc})
	}
	return params
}
