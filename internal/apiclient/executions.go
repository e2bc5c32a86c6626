package apiclient

import (
	"context"
	"net/url"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/logger"
	"github.com/hochfrequenz/automation-portal/internal/mapping"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

// DefaultRecentLimit is the number of executions Recent fetches when none is given
const DefaultRecentLimit = 10

// ExecutionService wraps the execution history endpoints
type ExecutionService struct {
	c *Client
}

// Executions returns the execution endpoints
func (c *Client) Executions() *ExecutionService {
	return &ExecutionService{c: c}
}

// StepLogs is a page of log lines for an execution or one of its steps
type StepLogs struct {
	Lines   []string
	HasMore bool
}

// List fetches the execution history. params are passed through as filters.
func (s *ExecutionService) List(ctx context.Context, params Params) ([]domain.Execution, error) {
	resp, err := s.c.Get(ctx, "/executions", params)
	if err != nil {
		return nil, err
	}
	return s.decodeList(resp)
}

// Recent fetches the latest executions for the dashboard
func (s *ExecutionService) Recent(ctx context.Context, limit int) ([]domain.Execution, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	resp, err := s.c.Get(ctx, "/executions/recent", Params{"limit": limit})
	if err != nil {
		return nil, err
	}
	return s.decodeList(resp)
}

// Get fetches one execution with its steps
func (s *ExecutionService) Get(ctx context.Context, id string) (domain.Execution, error) {
	resp, err := s.c.Get(ctx, executionPath(id), nil)
	if err != nil {
		return domain.Execution{}, err
	}
	return s.decodeOne(resp)
}

// Cancel asks the API to stop a running execution
func (s *ExecutionService) Cancel(ctx context.Context, id string) (domain.Execution, error) {
	resp, err := s.c.Patch(ctx, executionPath(id)+"/cancel", nil)
	if err != nil {
		return domain.Execution{}, err
	}
	return s.decodeOne(resp)
}

// Retry starts a new run of a finished execution
func (s *ExecutionService) Retry(ctx context.Context, id string) (domain.Execution, error) {
	resp, err := s.c.Post(ctx, executionPath(id)+"/retry", nil)
	if err != nil {
		return domain.Execution{}, err
	}
	return s.decodeOne(resp)
}

// Logs fetches execution logs, narrowed to one step when stepID is set
func (s *ExecutionService) Logs(ctx context.Context, id, stepID string) (StepLogs, error) {
	params := Params{}
	if stepID != "" {
		params["stepId"] = stepID
	}
	resp, err := s.c.Get(ctx, executionPath(id)+"/logs", params)
	if err != nil {
		return StepLogs{}, err
	}
	body, err := decode[wire.LogsResponse](resp, "execution logs")
	if err != nil {
		return StepLogs{}, err
	}
	lines := body.Logs
	if lines == nil {
		lines = []string{}
	}
	return StepLogs{Lines: lines, HasMore: body.HasMore}, nil
}

func (s *ExecutionService) decodeList(resp *Response) ([]domain.Execution, error) {
	body, err := decode[wire.ExecutionListResponse](resp, "executions")
	if err != nil {
		return nil, err
	}
	for _, e := range body.Executions {
		s.noteUnknownStatus(e)
	}
	return mapping.Executions(body.Executions), nil
}

func (s *ExecutionService) decodeOne(resp *Response) (domain.Execution, error) {
	body, err := decode[wire.Execution](resp, "execution")
	if err != nil {
		return domain.Execution{}, err
	}
	s.noteUnknownStatus(body)
	return mapping.Execution(body), nil
}

// noteUnknownStatus logs statuses outside the synonym table. They still
// normalize to inactive but the log makes upstream vocabulary drift visible.
func (s *ExecutionService) noteUnknownStatus(e wire.Execution) {
	if e.Status != "" && !domain.IsKnownStatus(e.Status) {
		s.c.log.Debug("unrecognized execution status",
			logger.String("execution_id", e.ExecutionID),
			logger.String("status", e.Status),
		)
	}
	for _, step := range e.Steps {
		if step.Status != "" && !domain.IsKnownStatus(step.Status) {
			s.c.log.Debug("unrecognized step status",
				logger.String("execution_id", e.ExecutionID),
				logger.Int("step_index", step.StepIndex),
				logger.String("status", step.Status),
			)
		}
	}
}

func executionPath(id string) string {
	return "/executions/" + url.PathEscape(id)
}
