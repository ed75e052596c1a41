package services

import (
	"context"
	"fmt"

	"busfinder/internal/domain"
	"busfinder/internal/domain/models"
	"busfinder/internal/utils"
)

// NoResultsMessage is shown when a search matches nothing.
const NoResultsMessage = "No buses found with the selected filters."

// BusSearcher executes a translated search.
type BusSearcher interface {
	Search(ctx context.Context, c models.FilterCriteria) ([]models.BusRecord, error)
}

// SearchResult is the outcome of one submission.
type SearchResult struct {
	State    domain.SubmissionState `json:"state"`
	Criteria *models.FilterCriteria `json:"criteria,omitempty"`
	Columns  []string               `json:"columns,omitempty"`
	Rows     []models.BusRecord     `json:"rows,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Err      error                  `json:"-"`
}

// Empty reports a rendered search without rows.
func (r SearchResult) Empty() bool {
	return r.State == domain.StateRendered && len(r.Rows) == 0
}

// AwaitingSubmission is the result shown before anything was submitted.
func AwaitingSubmission() SearchResult {
	return SearchResult{State: domain.StateAwaitingSubmission}
}

type SearchService struct {
	Filters *FilterService
	Repo    BusSearcher
}

// Submit runs one collect, translate, execute cycle. Failures end the cycle
// in StateFailed; nothing is retried.
func (s SearchService) Submit(ctx context.Context, form models.FilterForm) SearchResult {
	c, err := s.Filters.Collect(ctx, form)
	if err != nil {
		return failed(nil, err)
	}
	return s.Execute(ctx, c)
}

// Execute runs already collected criteria.
func (s SearchService) Execute(ctx context.Context, c models.FilterCriteria) SearchResult {
	reqID := utils.RequestIDFrom(ctx)

	rows, err := s.Repo.Search(ctx, c)
	if err != nil {
		if !domain.IsQueryExecution(err) {
			err = domain.QueryExecutionError{Query: "search", Err: err}
		}
		utils.LogFailure(reqID, "search", "execute", err)
		return failed(&c, err)
	}

	utils.LogEvent(reqID, "search", "execute", fmt.Sprintf("state=%q from=%q to=%q rows=%d",
		c.State, c.FromPlace, c.ToPlace, len(rows)))

	res := SearchResult{
		State:    domain.StateRendered,
		Criteria: &c,
		Columns:  models.ResultColumns,
		Rows:     rows,
	}
	if len(rows) == 0 {
		res.Columns = nil
		res.Rows = nil
		res.Message = NoResultsMessage
	}
	return res
}

func failed(c *models.FilterCriteria, err error) SearchResult {
	return SearchResult{
		State:    domain.StateFailed,
		Criteria: c,
		Message:  "Error: " + err.Error(),
		Err:      err,
	}
}
