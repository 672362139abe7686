package dispatcher

import (
	"context"
	"fmt"
	"log"

	"crossconnect/store"
)

// Notifier is the non-blocking user notification channel (the toast
// equivalent). Implementations must not block the caller.
type Notifier interface {
	Notify(message string)
}

// LogNotifier writes notices to diagnostics. Used wherever no UI
// collaborator is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(message string) {
	log.Printf("notice: %s", message)
}

// Mutator is the write half of the document store.
type Mutator interface {
	Create(ctx context.Context, collection string, fields store.Fields) (string, error)
	Update(ctx context.Context, collection, id string, fields store.Fields) error
	Upsert(ctx context.Context, collection, id string, fields store.Fields) error
	Delete(ctx context.Context, collection, id string) error
}

// Dispatcher applies mutations and normalizes their outcome: on success the
// caller's message goes out through the notifier, on failure the error is
// logged to diagnostics and returned. Failures are never swallowed; callers
// decide retry policy. An empty message means no notification.
type Dispatcher struct {
	store    Mutator
	notifier Notifier
}

func New(st Mutator, n Notifier) *Dispatcher {
	if n == nil {
		n = LogNotifier{}
	}
	return &Dispatcher{store: st, notifier: n}
}

func (d *Dispatcher) Create(ctx context.Context, collection string, fields store.Fields, successMsg string) (string, error) {
	id, err := d.store.Create(ctx, collection, fields)
	if err != nil {
		log.Printf("Failed to create document in %s: %v", collection, err)
		return "", fmt.Errorf("failed to create document in %s: %w", collection, err)
	}

	d.notify(successMsg)
	return id, nil
}

func (d *Dispatcher) Update(ctx context.Context, collection, id string, fields store.Fields, successMsg string) error {
	if err := d.store.Update(ctx, collection, id, fields); err != nil {
		log.Printf("Failed to update document %s in %s: %v", id, collection, err)
		return fmt.Errorf("failed to update document %s in %s: %w", id, collection, err)
	}

	d.notify(successMsg)
	return nil
}

func (d *Dispatcher) Upsert(ctx context.Context, collection, id string, fields store.Fields, successMsg string) error {
	if err := d.store.Upsert(ctx, collection, id, fields); err != nil {
		log.Printf("Failed to upsert document %s in %s: %v", id, collection, err)
		return fmt.Errorf("failed to upsert document %s in %s: %w", id, collection, err)
	}

	d.notify(successMsg)
	return nil
}

func (d *Dispatcher) Remove(ctx context.Context, collection, id string, successMsg string) error {
	if err := d.store.Delete(ctx, collection, id); err != nil {
		log.Printf("Failed to delete document %s from %s: %v", id, collection, err)
		return fmt.Errorf("failed to delete document %s from %s: %w", id, collection, err)
	}

	d.notify(successMsg)
	return nil
}

func (d *Dispatcher) notify(message string) {
	if message != "" {
		d.notifier.Notify(message)
	}
}
