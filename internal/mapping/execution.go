package mapping

import (
	"encoding/json"
	"math"
	"time"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

// StepRun maps one pipeline step
func StepRun(w wire.StepRun) domain.StepRun {
	return domain.StepRun{
		StepIndex:    w.StepIndex,
		StepName:     w.StepName,
		ScriptPath:   w.ScriptPath,
		ScriptURL:    deref(w.ScriptURL),
		RawStatus:    w.Status,
		Status:       domain.NormalizeStatus(w.Status),
		Input:        payload(w.StepInput),
		Output:       payload(w.StepOutput),
		ErrorDetails: deref(w.ErrorDetails),
		StartedAt:    deref(w.StartedAt),
		FinishedAt:   deref(w.FinishedAt),
		Duration:     millis(w.Duration),
		RetryCount:   deref(w.RetryCount),
		Metadata:     bag(w.Metadata),
	}
}

// Execution maps an execution and its steps. Step order is kept exactly as received.
func Execution(w wire.Execution) domain.Execution {
	steps := make([]domain.StepRun, 0, len(w.Steps))
	for _, s := range w.Steps {
		steps = append(steps, StepRun(s))
	}
	return domain.Execution{
		ExecutionID:     w.ExecutionID,
		ProductID:       w.ProductID,
		ProductName:     w.ProductName,
		PipelineName:    deref(w.PipelineName),
		RawStatus:       w.Status,
		Status:          domain.NormalizeStatus(w.Status),
		StartedAt:       w.StartedAt,
		FinishedAt:      deref(w.FinishedAt),
		Duration:        millis(w.Duration),
		TriggeredBy:     deref(w.TriggeredBy),
		Environment:     deref(w.Environment),
		Steps:           steps,
		TotalSteps:      w.TotalSteps,
		SuccessfulSteps: w.SuccessfulSteps,
		FailedSteps:     w.FailedSteps,
		SkippedSteps:    w.SkippedSteps,
		CurrentStep:     string(deref(w.CurrentStep)),
		Progress:        int(math.Round(w.Progress)),
		Metadata:        bag(w.Metadata),
	}
}

// Executions maps an execution list, preserving order
func Executions(ws []wire.Execution) []domain.Execution {
	out := make([]domain.Execution, 0, len(ws))
	for _, w := range ws {
		out = append(out, Execution(w))
	}
	return out
}

func millis(ms *float64) time.Duration {
	if ms == nil {
		return 0
	}
	return time.Duration(*ms * float64(time.Millisecond))
}

func bag(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func payload(raw json.RawMessage) json.RawMessage {
	if wire.IsNull(raw) {
		return nil
	}
	return raw
}
