package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/livity/realestate-api/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Reject          // drop, the payload can never succeed
	Requeue         // transient failure, try again later
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Reject:
		return "reject"
	case Requeue:
		return "requeue"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Handle decodes, renders and sends one queued job.
func Handle(ctx context.Context, sender Sender, body []byte) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Reject, fmt.Errorf("decode job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return Reject, err
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return Reject, fmt.Errorf("render %s: %w", job.Template, err)
		}
		subject, text, html = s, t, h
	}

	if err := sender.Send(ctx, job.To, subject, text, html); err != nil {
		return Requeue, fmt.Errorf("send to %s: %w", job.To, err)
	}
	return Ack, nil
}
