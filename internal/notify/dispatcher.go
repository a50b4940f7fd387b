package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, maxAttempts, limit int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

// Dispatcher records events as outbox tasks. EmitTx runs inside the state
// transition's transaction, so the event either commits with the transition
// or disappears with it; actual delivery is the Publisher's job.
type Dispatcher struct {
	repo  OutboxRepository
	topic string
}

func NewDispatcher(repo OutboxRepository, topic string) *Dispatcher {
	return &Dispatcher{repo: repo, topic: topic}
}

func (d *Dispatcher) EmitTx(ctx context.Context, tx db.Tx, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	task := &repository.OutboxTask{
		Fingerprint: event.Fingerprint,
		Payload:     payload,
		Topic:       d.topic,
	}
	if err := d.repo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", event.Type, err)
	}
	return nil
}
