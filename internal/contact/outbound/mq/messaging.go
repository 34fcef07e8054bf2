package mq

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/phonebook/internal/contact/usecase"
	"github.com/shandysiswandi/phonebook/internal/pkg/instrument"
	"github.com/shandysiswandi/phonebook/internal/pkg/messaging"
	"github.com/shandysiswandi/phonebook/internal/shared/event"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	keyOfCorrelationID string = "cID"

	publishAttempts uint64 = 3
	publishBackoff         = 100 * time.Millisecond
)

type Messaging struct {
	client  messaging.Publisher
	ins     instrument.Instrumentation
	backoff time.Duration
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins, backoff: publishBackoff}
}

func (m *Messaging) PublishContactCreated(ctx context.Context, ev usecase.ContactEvent) error {
	return m.publish(ctx, "PublishContactCreated", event.ContactCreatedDestination, ev)
}

func (m *Messaging) PublishContactUpdated(ctx context.Context, ev usecase.ContactEvent) error {
	return m.publish(ctx, "PublishContactUpdated", event.ContactUpdatedDestination, ev)
}

func (m *Messaging) PublishContactDeleted(ctx context.Context, ev usecase.ContactEvent) error {
	return m.publish(ctx, "PublishContactDeleted", event.ContactDeletedDestination, ev)
}

// publish retries with exponential backoff; the contact id is the message
// key so a partitioned broker keeps per-contact order.
func (m *Messaging) publish(ctx context.Context, name, destination string, ev usecase.ContactEvent) (err error) {
	ctx, span := m.ins.Tracer("contact.outbound.mq").Start(ctx, name)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(event.ContactMessage{
		EventID:    ev.EventID,
		ContactID:  ev.Contact.ID,
		FirstName:  ev.Contact.FirstName,
		LastName:   ev.Contact.LastName,
		Phone:      ev.Contact.Phone,
		Address:    ev.Contact.Address,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return err
	}

	key := strconv.FormatInt(ev.Contact.ID, 10)
	msg := messaging.OutgoingMessage{
		Body:        body,
		Key:         []byte(key),
		OrderingKey: key,
		Headers:     []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	}

	var attempts int
	b := retry.WithMaxRetries(publishAttempts-1, retry.NewExponential(m.backoff))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		if _, err := m.client.Publish(ctx, destination, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	span.SetAttributes(attribute.String("messaging.destination", destination), attribute.Int("messaging.attempts", attempts))

	return err
}
