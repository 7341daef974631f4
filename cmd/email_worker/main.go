package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/config"
	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}

	consumerTag := workerTag(cfg.AppName)
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, consumerTag, false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			deliver(ctx, logger, mg, msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	if !drain(ch, consumerTag, done, 5*time.Second) {
		logger.Warn("consumer did not drain before timeout")
	}
	cancel()
}

type consumerCanceler interface {
	Cancel(consumer string, noWait bool) error
}

// drain stops deliveries for tag and waits for the consume loop to finish.
// It reports whether the loop finished within wait.
func drain(ch consumerCanceler, tag string, done <-chan struct{}, wait time.Duration) bool {
	if err := ch.Cancel(tag, false); err != nil {
		return false
	}
	select {
	case <-done:
		return true
	case <-time.After(wait):
		return false
	}
}

func deliver(ctx context.Context, logger *logrus.Logger, sender mailer.Sender, msg amqp.Delivery) {
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	outcome, err := mailer.Handle(c, sender, msg.Body)
	fields := logrus.Fields{"outcome": outcome.String(), "redelivered": msg.Redelivered}
	switch outcome {
	case mailer.Ack:
		_ = msg.Ack(false)
		return
	case mailer.Requeue:
		// a message that already failed once is dropped instead of looping
		_ = msg.Nack(false, !msg.Redelivered)
	default:
		_ = msg.Nack(false, false)
	}
	helpers.LogWarn(logger, "email job not delivered", err, fields)
}

// workerTag names the consumer so shutdown can cancel it.
func workerTag(app string) string {
	return app + "-email-worker"
}
