package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/taskhub-api/config"
	"github.com/oksasatya/taskhub-api/pkg/events"
	"github.com/oksasatya/taskhub-api/pkg/mailer"
)

// Consumes task events from RabbitMQ and sends notification emails via
// Mailgun. Runs separately from the API so email latency never touches
// request handling.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; notification worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQTaskQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQTaskQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQTaskQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev events.TaskEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}
			if ev.RecipientEmail == "" {
				_ = msg.Ack(false)
				continue
			}

			subject, text := composeEmail(ev)
			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := mg.Send(c, ev.RecipientEmail, subject, text, ""); err != nil {
				cancel()
				log.Printf("send failed: %v", err)
				_ = msg.Nack(false, true)
				continue
			}
			cancel()
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("notification worker listening on queue=%s", cfg.RabbitMQTaskQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func composeEmail(ev events.TaskEvent) (subject, text string) {
	switch ev.Type {
	case events.TaskAssigned:
		subject = fmt.Sprintf("Task assigned to you: %s", ev.Title)
		text = fmt.Sprintf("You have been assigned the task %q (#%d).", ev.Title, ev.TaskID)
	case events.TaskCompleted:
		subject = fmt.Sprintf("Task completed: %s", ev.Title)
		text = fmt.Sprintf("The task %q (#%d) has been marked completed.", ev.Title, ev.TaskID)
	default:
		subject = fmt.Sprintf("Task update: %s", ev.Title)
		text = fmt.Sprintf("The task %q (#%d) was updated.", ev.Title, ev.TaskID)
	}
	return subject, text
}
