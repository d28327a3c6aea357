package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "password_reset"
	Data     map[string]any `json:"data,omitempty"`
}

// Validate rejects jobs the worker can never deliver.
func (j *EmailJob) Validate() error {
	if j.To == "" {
		return fmt.Errorf("email job without recipient")
	}
	if j.Template == "" && j.Subject == "" {
		return fmt.Errorf("email job to %s has neither template nor subject", j.To)
	}
	return nil
}

// EnsureRecipient fills Data["Email"] from To when templates need it.
func (j *EmailJob) EnsureRecipient() {
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		j.Data["Email"] = j.To
	}
}
