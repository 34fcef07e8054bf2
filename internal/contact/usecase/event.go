package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
)

type publishFunc func(ctx context.Context, ev ContactEvent) error

// emit publishes one event per contact from a single background task.
// Failures are logged and never reach the caller.
func (s *Usecase) emit(ctx context.Context, name string, publish publishFunc, contacts ...entity.Contact) {
	if len(contacts) == 0 {
		return
	}

	events := make([]ContactEvent, 0, len(contacts))
	for _, c := range contacts {
		events = append(events, ContactEvent{EventID: s.uid.Generate(), Contact: c, OccurredAt: s.clock.Now()})
	}

	s.goroutine.Go(ctx, func(ctx context.Context) error {
		for _, ev := range events {
			if err := publish(ctx, ev); err != nil {
				slog.ErrorContext(ctx, "failed to publish contact event", "event", name, "contact_id", ev.Contact.ID, "error", err)
			}
		}
		return nil
	})
}
