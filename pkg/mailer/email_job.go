package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (rendered by the worker with Data) or Subject plus a body is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "listing_published"
	Data     map[string]any `json:"data,omitempty"`
}

// Validate reports whether the job can be delivered at all.
func (j EmailJob) Validate() error {
	if j.To == "" {
		return errMissingRecipient
	}
	if j.Template == "" && j.Subject == "" {
		return errMissingContent
	}
	return nil
}
