package wire

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// StepRun is one pipeline step inside an execution
type StepRun struct {
	StepIndex    int             `json:"step_index"`
	StepName     string          `json:"step_name"`
	ScriptPath   string          `json:"script_path"`
	ScriptURL    *string         `json:"script_url,omitempty"`
	Status       string          `json:"status"`
	StepInput    json.RawMessage `json:"step_input,omitempty"`
	StepOutput   json.RawMessage `json:"step_output,omitempty"`
	ErrorDetails *string         `json:"error_details,omitempty"`
	StartedAt    *string         `json:"started_at,omitempty"`
	FinishedAt   *string         `json:"finished_at,omitempty"`
	Duration     *float64        `json:"duration,omitempty"` // milliseconds
	RetryCount   *int            `json:"retry_count,omitempty"`
	Metadata     map[string]any  `json:"metadata,omitempty"`
}

// Execution is one pipeline run
type Execution struct {
	ExecutionID     string         `json:"execution_id"`
	ProductID       int            `json:"product_id"`
	ProductName     string         `json:"product_name"`
	PipelineName    *string        `json:"pipeline_name,omitempty"`
	Status          string         `json:"status"`
	StartedAt       string         `json:"started_at"`
	FinishedAt      *string        `json:"finished_at,omitempty"`
	Duration        *float64       `json:"duration,omitempty"` // milliseconds
	TriggeredBy     *string        `json:"triggered_by,omitempty"`
	Environment     *string        `json:"environment,omitempty"`
	Steps           []StepRun      `json:"steps"`
	TotalSteps      int            `json:"total_steps"`
	SuccessfulSteps int            `json:"successful_steps"`
	FailedSteps     int            `json:"failed_steps"`
	SkippedSteps    int            `json:"skipped_steps"`
	CurrentStep     *FlexString    `json:"current_step,omitempty"`
	Progress        float64        `json:"progress"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// ExecutionListResponse is the body of GET /executions and GET /executions/recent
type ExecutionListResponse struct {
	Executions []Execution `json:"executions"`
}

// LogsResponse is the body of GET /executions/:id/logs
type LogsResponse struct {
	Logs    []string `json:"logs"`
	HasMore bool     `json:"hasMore"`
}

// FlexString decodes from either a JSON string or a JSON number.
// The API reports current_step as a step index or a step name depending on version.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// IsNull reports whether a raw payload is absent or JSON null
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
