package notify

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

func TestSlackNotifier_Build(t *testing.T) {
	s := NewSlackNotifier("", "https://portal.example.com")
	msg := s.Build(Notification{
		Title:       "Chrome pipeline failed",
		Message:     "Failed: 1/4 steps succeeded, 1 failed",
		Type:        NotifyError,
		ExecutionID: "exec-42",
		ProductName: "Chrome",
	})

	if len(msg.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(msg.Attachments))
	}
	att := msg.Attachments[0]
	if att.Color != "danger" {
		t.Errorf("Color = %q, want danger", att.Color)
	}
	if att.TitleLink != "https://portal.example.com/executions?execution=exec-42" {
		t.Errorf("TitleLink = %q", att.TitleLink)
	}
	if len(att.Fields) != 2 {
		t.Errorf("got %d fields, want product and execution", len(att.Fields))
	}

	payload, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(payload), `"title_link"`) {
		t.Error("payload should carry the execution link")
	}
}

func TestSlackNotifier_Send(t *testing.T) {
	var got SlackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewSlackNotifier(server.URL, "")
	err := notifier.Send(Notification{
		Title:   "Test",
		Message: "Test message",
		Type:    NotifyInfo,
	})

	if err != nil {
		t.Errorf("Send failed: %v", err)
	}
	if got.Text != "Test" {
		t.Errorf("Text = %q, want Test", got.Text)
	}
}

func TestSlackNotifier_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if err := NewSlackNotifier(server.URL, "").Send(Notification{Title: "x"}); err == nil {
		t.Error("expected error for non-200 webhook response")
	}
}

func TestSlackNotifier_DisabledWithoutWebhook(t *testing.T) {
	if err := NewSlackNotifier("", "").Send(Notification{Title: "x"}); err != nil {
		t.Errorf("disabled notifier returned %v", err)
	}
}

func TestNotificationTypeColors(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotifySuccess, "good"},
		{NotifyWarning, "warning"},
		{NotifyError, "danger"},
		{NotifyInfo, "#439FE0"},
	}

	for _, tt := range tests {
		got := SlackColor(tt.typ)
		if got != tt.want {
			t.Errorf("SlackColor(%v) = %s, want %s", tt.typ, got, tt.want)
		}
	}
}

func TestForExecution(t *testing.T) {
	n := ForExecution(domain.Execution{
		ExecutionID:     "exec-1",
		ProductName:     "Zoom",
		Status:          domain.StatusFailed,
		TotalSteps:      4,
		SuccessfulSteps: 2,
		FailedSteps:     1,
	})

	if n.Type != NotifyError {
		t.Errorf("Type = %v, want NotifyError", n.Type)
	}
	if n.Title != "Zoom pipeline failed" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Message != "Failed: 2/4 steps succeeded, 1 failed" {
		t.Errorf("Message = %q", n.Message)
	}
	if n.ExecutionID != "exec-1" {
		t.Errorf("ExecutionID = %q", n.ExecutionID)
	}
}

func TestTypeForStatus(t *testing.T) {
	tests := map[domain.StandardStatus]NotificationType{
		domain.StatusSuccess:   NotifySuccess,
		domain.StatusFailed:    NotifyError,
		domain.StatusCancelled: NotifyWarning,
		domain.StatusRunning:   NotifyInfo,
	}
	for status, want := range tests {
		if got := TypeForStatus(status); got != want {
			t.Errorf("TypeForStatus(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestMultiNotifier(t *testing.T) {
	var called []string

	mock1 := &mockNotifier{name: "mock1", calls: &called, err: errors.New("mock1 down")}
	mock2 := &mockNotifier{name: "mock2", calls: &called}

	multi := NewMultiNotifier(mock1, mock2)
	err := multi.Send(Notification{Title: "Test"})

	if len(called) != 2 {
		t.Errorf("Expected 2 calls, got %d", len(called))
	}
	if err == nil || !strings.Contains(err.Error(), "mock1 down") {
		t.Errorf("err = %v, want mock1 failure reported", err)
	}
}

type mockNotifier struct {
	name  string
	calls *[]string
	err   error
}

func (m *mockNotifier) Send(n Notification) error {
	*m.calls = append(*m.calls, m.name)
	return m.err
}
