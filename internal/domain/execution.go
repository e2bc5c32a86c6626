package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// StepRun is one stage of a pipeline execution
type StepRun struct {
	StepIndex    int
	StepName     string
	ScriptPath   string
	ScriptURL    string
	RawStatus    string
	Status       StandardStatus
	Input        json.RawMessage
	Output       json.RawMessage
	ErrorDetails string
	StartedAt    string
	FinishedAt   string
	Duration     time.Duration
	RetryCount   int
	Metadata     map[string]any
}

// HasInput reports whether the step recorded an input payload
func (s *StepRun) HasInput() bool { return len(s.Input) > 0 }

// HasOutput reports whether the step recorded an output payload
func (s *StepRun) HasOutput() bool { return len(s.Output) > 0 }

// DisplayName returns the step name, falling back to the name of its pipeline stage
func (s *StepRun) DisplayName() string {
	if s.StepName != "" {
		return s.StepName
	}
	return StageForIndex(s.StepIndex).Name
}

// Execution is one historical run of a product's automation pipeline
type Execution struct {
	ExecutionID     string
	ProductID       int
	ProductName     string
	PipelineName    string
	RawStatus       string
	Status          StandardStatus
	StartedAt       string
	FinishedAt      string
	Duration        time.Duration
	TriggeredBy     string
	Environment     string
	Steps           []StepRun
	TotalSteps      int
	SuccessfulSteps int
	FailedSteps     int
	SkippedSteps    int
	CurrentStep     string
	Progress        int
	Metadata        map[string]any
}

// CheckCounts reports step counters that exceed the declared total.
// The API does not enforce this so callers decide whether to surface it.
func (e *Execution) CheckCounts() error {
	done := e.SuccessfulSteps + e.FailedSteps + e.SkippedSteps
	if done > e.TotalSteps {
		return fmt.Errorf("execution %s: %d finished steps exceed total of %d", e.ExecutionID, done, e.TotalSteps)
	}
	return nil
}

// PipelineProgress returns the percentage of steps that reached a terminal state
func (e *Execution) PipelineProgress() int {
	completed := 0
	for _, s := range e.Steps {
		if s.Status.IsTerminal() {
			completed++
		}
	}
	return Progress(completed, e.TotalSteps)
}

// RunningStep returns the step currently executing, or nil
func (e *Execution) RunningStep() *StepRun {
	for i := range e.Steps {
		if e.Steps[i].Status == StatusRunning {
			return &e.Steps[i]
		}
	}
	return nil
}

// ActiveStepName names the step in flight. The API's current step wins over
// the first running step; "" means nothing is running.
func (e *Execution) ActiveStepName() string {
	if e.CurrentStep != "" {
		return e.CurrentStep
	}
	if s := e.RunningStep(); s != nil {
		return s.DisplayName()
	}
	return ""
}

// StartedTime parses StartedAt, returning the zero time when absent or malformed
func (e *Execution) StartedTime() time.Time {
	return ParseTimestamp(e.StartedAt)
}

// Progress returns completed/total as a rounded percentage. A zero total yields 0.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// HealthScore returns the share of successful executions as a percentage.
// An empty history scores 100.
func HealthScore(executions []Execution) int {
	if len(executions) == 0 {
		return 100
	}
	ok := 0
	for _, e := range executions {
		if e.Status == StatusSuccess {
			ok++
		}
	}
	return Progress(ok, len(executions))
}

// GroupByProduct buckets executions by product name, keeping input order per bucket
func GroupByProduct(executions []Execution) map[string][]Execution {
	groups := make(map[string][]Execution)
	for _, e := range executions {
		groups[e.ProductName] = append(groups[e.ProductName], e)
	}
	return groups
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an API timestamp. Empty or unparsable input yields the zero time.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
