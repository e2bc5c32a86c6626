package notify

import (
	"errors"
	"fmt"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotifyInfo NotificationType = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

// Notification represents a notification to be sent
type Notification struct {
	Title       string
	Message     string
	Type        NotificationType
	ExecutionID string // Optional execution reference
	ProductName string // Optional product reference
}

// Notifier is the interface for sending notifications
type Notifier interface {
	Send(n Notification) error
}

// TypeForStatus maps an execution status to a notification type
func TypeForStatus(s domain.StandardStatus) NotificationType {
	switch s {
	case domain.StatusSuccess:
		return NotifySuccess
	case domain.StatusFailed:
		return NotifyError
	case domain.StatusCancelled:
		return NotifyWarning
	default:
		return NotifyInfo
	}
}

// ForExecution builds the notification announcing an execution's current status
func ForExecution(e domain.Execution) Notification {
	msg := fmt.Sprintf("%s: %d/%d steps succeeded", e.Status.DisplayText(), e.SuccessfulSteps, e.TotalSteps)
	if e.FailedSteps > 0 {
		msg += fmt.Sprintf(", %d failed", e.FailedSteps)
	}
	return Notification{
		Title:       fmt.Sprintf("%s pipeline %s", e.ProductName, e.Status),
		Message:     msg,
		Type:        TypeForStatus(e.Status),
		ExecutionID: e.ExecutionID,
		ProductName: e.ProductName,
	}
}

// MultiNotifier sends to multiple notifiers
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send sends the notification to all notifiers, even when some fail
func (m *MultiNotifier) Send(n Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NoopNotifier does nothing (for testing or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) Send(n Notification) error { return nil }
