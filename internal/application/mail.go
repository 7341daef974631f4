package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/mailer"
)

const publishTimeout = 3 * time.Second

// enqueueEmail publishes job when a publisher is configured. Failures are
// logged and never reach the caller.
func enqueueEmail(ctx context.Context, pub EmailPublisher, logger *logrus.Logger, job mailer.EmailJob) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(logger, "enqueue email failed", err, logrus.Fields{"template": job.Template, "to": job.To})
	}
}
