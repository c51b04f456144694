package mailer

// Template names understood by the notification worker.
const (
	TemplateWelcome      = "welcome"
	TemplateBadgeAwarded = "badge_awarded"
)

// NotificationJob is the JSON payload put on the RabbitMQ queue. Subject,
// Text and HTML are used as-is when Template is empty; otherwise the worker
// renders the named template with Data.
type NotificationJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
