package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	"github.com/gctalent/talent-backoffice/pkg/client"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

// BackofficeSvc drives one table of the back office the way a browser would:
// every call starts from the canonical query of the previous view.
type BackofficeSvc struct {
	api   *client.Client
	table string
	query url.Values
}

func NewBackofficeSvc(apiURL, table string) (*BackofficeSvc, error) {
	zap.S().Named("e2e").Infow("initializing back office service", "url", apiURL, "table", table)
	api, err := client.NewClient(apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize back office client: %w", err)
	}
	return &BackofficeSvc{api: api, table: table, query: url.Values{}}, nil
}

func (s *BackofficeSvc) Client() *client.Client { return s.api }

// Query returns the canonical query of the last view.
func (s *BackofficeSvc) Query() string { return s.query.Encode() }

// Open loads the view at rawQuery, as when following a shared link.
func (s *BackofficeSvc) Open(ctx context.Context, rawQuery string) (*v1.TableView, error) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	return s.track(s.api.Rows(ctx, s.table, q))
}

func (s *BackofficeSvc) Search(ctx context.Context, term, column string) (*v1.TableView, error) {
	return s.Patch(ctx, v1.StatePatch{Search: &tablestate.Search{Term: term, Column: column}})
}

func (s *BackofficeSvc) ToggleSort(ctx context.Context, column string) (*v1.TableView, error) {
	return s.Patch(ctx, v1.StatePatch{ToggleSort: &column})
}

func (s *BackofficeSvc) GoToPage(ctx context.Context, index, size int) (*v1.TableView, error) {
	return s.Patch(ctx, v1.StatePatch{Pagination: &tablestate.Pagination{PageIndex: index, PageSize: size}})
}

func (s *BackofficeSvc) Reset(ctx context.Context) (*v1.TableView, error) {
	reset := true
	return s.Patch(ctx, v1.StatePatch{Reset: &reset})
}

func (s *BackofficeSvc) Patch(ctx context.Context, patch v1.StatePatch) (*v1.TableView, error) {
	return s.track(s.api.PatchState(ctx, s.table, s.query, patch))
}

// SelectPage adds every row of the current page to selection id, creating it
// when id is empty.
func (s *BackofficeSvc) SelectPage(ctx context.Context, id string) (*v1.Selection, error) {
	page := true
	return s.api.UpdateSelection(ctx, s.table, id, s.query, v1.SelectionRequest{Page: &page})
}

// Export downloads the current view, or selection when set.
func (s *BackofficeSvc) Export(ctx context.Context, selection string) ([]byte, error) {
	return s.api.Export(ctx, s.table, s.query, selection)
}

func (s *BackofficeSvc) track(view *v1.TableView, err error) (*v1.TableView, error) {
	if err != nil {
		return nil, err
	}
	q, err := url.ParseQuery(view.Query)
	if err != nil {
		return nil, err
	}
	s.query = q
	return view, nil
}
