package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SlackNotifier sends notifications to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	portalURL  string
	client     *http.Client
}

// SlackMessage represents a Slack message payload
type SlackMessage struct {
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment represents a Slack message attachment
type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title,omitempty"`
	TitleLink string       `json:"title_link,omitempty"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields,omitempty"`
	Footer    string       `json:"footer,omitempty"`
}

// SlackField is a short key-value pair shown in an attachment
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NewSlackNotifier creates a new Slack notifier. portalURL, when set, links
// execution notifications to the execution history.
func NewSlackNotifier(webhookURL, portalURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		portalURL:  portalURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ToJSON converts the message to JSON
func (m *SlackMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SlackColor returns the Slack color for a notification type
func SlackColor(t NotificationType) string {
	switch t {
	case NotifySuccess:
		return "good"
	case NotifyWarning:
		return "warning"
	case NotifyError:
		return "danger"
	default:
		return "#439FE0"
	}
}

// Build renders a notification as a Slack message
func (s *SlackNotifier) Build(n Notification) SlackMessage {
	att := SlackAttachment{
		Color:  SlackColor(n.Type),
		Text:   n.Message,
		Footer: "Automation Portal",
	}
	if n.ProductName != "" {
		att.Fields = append(att.Fields, SlackField{Title: "Product", Value: n.ProductName, Short: true})
	}
	if n.ExecutionID != "" {
		att.Title = n.ExecutionID
		att.Fields = append(att.Fields, SlackField{Title: "Execution", Value: n.ExecutionID, Short: true})
		if s.portalURL != "" {
			att.TitleLink = s.portalURL + "/executions?execution=" + n.ExecutionID
		}
	}
	return SlackMessage{Text: n.Title, Attachments: []SlackAttachment{att}}
}

// Send sends a notification to Slack
func (s *SlackNotifier) Send(n Notification) error {
	if s.webhookURL == "" {
		return nil // Disabled
	}

	msg := s.Build(n)
	payload, err := msg.ToJSON()
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}

	return nil
}
