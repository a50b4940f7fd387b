package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable of the circulation engine. Values come from
// the environment (a .env file is loaded by the db package on startup) with
// library-policy defaults matching the production deployment.
type Config struct {
	HTTPPort string

	LoanPeriod       time.Duration
	PickupWindow     time.Duration
	QueueWait        time.Duration
	MaxQueueWait     time.Duration
	MaxExtensions    int
	MaxActiveHolds   int
	MaxActiveLoans   int
	SweepInterval    time.Duration
	DueSoonWindow    time.Duration
	SweepBatchSize   int

	KafkaBrokers       []string
	NotificationTopic  string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
}

const day = 24 * time.Hour

func Load() Config {
	return Config{
		HTTPPort: envString("HTTP_PORT", "9000"),

		LoanPeriod:     time.Duration(envInt("LOAN_PERIOD_DAYS", 14)) * day,
		PickupWindow:   time.Duration(envInt("PICKUP_WINDOW_HOURS", 48)) * time.Hour,
		QueueWait:      time.Duration(envInt("QUEUE_WAIT_DAYS", 3)) * day,
		MaxQueueWait:   time.Duration(envInt("MAX_QUEUE_WAIT_DAYS", 14)) * day,
		MaxExtensions:  envInt("MAX_EXTENSIONS", 1),
		MaxActiveHolds: envInt("MAX_ACTIVE_HOLDS", 5),
		MaxActiveLoans: envInt("MAX_ACTIVE_LOANS", 5),
		SweepInterval:  envDuration("SWEEP_INTERVAL", 2*time.Minute),
		DueSoonWindow:  time.Duration(envInt("DUE_SOON_WINDOW_HOURS", 48)) * time.Hour,
		SweepBatchSize: envInt("SWEEP_BATCH_SIZE", 100),

		KafkaBrokers:       envList("KAFKA_BROKERS", ""),
		NotificationTopic:  envString("NOTIFICATION_TOPIC", "circulation.notifications"),
		OutboxPollInterval: envDuration("OUTBOX_POLL_INTERVAL", 5*time.Second),
		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 20),
		OutboxMaxAttempts:  envInt("OUTBOX_MAX_ATTEMPTS", 5),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
