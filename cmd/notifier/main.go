package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/barthig/Biblioteka-sub005/internal/config"
	"github.com/barthig/Biblioteka-sub005/internal/notify"
)

const groupID = "circulation-notifier"

// The notifier consumes circulation events and renders them as patron-facing
// messages. Delivery here is stdout; a mail or SMS gateway slots in the same
// place. Events carry a fingerprint, and the consumer group's offset handling
// plus that key make reprocessing after a rebalance harmless.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS must be set for the notifier")
	}

	log.Printf("Notifier connecting to topic %q on brokers %v", cfg.NotificationTopic, cfg.KafkaBrokers)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        groupID,
		Topic:          cfg.NotificationTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Println("Closing Kafka reader...")
		if err := r.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping notifier.")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Error reading message: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			var event notify.Event
			if err := json.Unmarshal(m.Value, &event); err != nil {
				log.Printf("Skipping malformed event at offset %d: %v", m.Offset, err)
				continue
			}

			deliver(event)
		}
	}
}

func deliver(event notify.Event) {
	switch event.Type {
	case notify.EventHoldReady:
		log.Printf("[patron %s] Your reserved item %s is ready for pickup (copy %s, hold until %s)",
			event.PatronID, event.ItemID, event.CopyID, formatTime(event.ExpiresAt))
	case notify.EventHoldExpired:
		log.Printf("[patron %s] Your reservation for item %s has expired",
			event.PatronID, event.ItemID)
	case notify.EventLoanDueSoon:
		log.Printf("[patron %s] Your loan of item %s is due %s",
			event.PatronID, event.ItemID, formatTime(event.DueAt))
	case notify.EventLoanOverdue:
		log.Printf("[patron %s] Your loan of item %s was due %s, please return it",
			event.PatronID, event.ItemID, formatTime(event.DueAt))
	default:
		log.Printf("Unknown event type %q (fingerprint %s)", event.Type, event.Fingerprint)
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}
