package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/clock"
	"github.com/shandysiswandi/phonebook/internal/pkg/config"
	"github.com/shandysiswandi/phonebook/internal/pkg/goroutine"
	"github.com/shandysiswandi/phonebook/internal/pkg/idempotency"
	"github.com/shandysiswandi/phonebook/internal/pkg/instrument"
	"github.com/shandysiswandi/phonebook/internal/pkg/uid"
	"github.com/shandysiswandi/phonebook/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// ContactEvent is what the messaging adapter publishes after a mutation.
type ContactEvent struct {
	EventID    int64
	Contact    entity.Contact
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishContactCreated(ctx context.Context, ev ContactEvent) error
	PublishContactUpdated(ctx context.Context, ev ContactEvent) error
	PublishContactDeleted(ctx context.Context, ev ContactEvent) error
}

type repoDB interface {
	GetContactByID(ctx context.Context, id int64) (*entity.Contact, error)
	ExistsContactByID(ctx context.Context, id int64) (bool, error)
	ListContacts(ctx context.Context, filter entity.ContactFilter, page entity.PageRequest) (*entity.ContactPage, error)
	SearchContacts(ctx context.Context, firstName, lastName string) ([]entity.Contact, error)

	CreateContact(ctx context.Context, c entity.Contact) (*entity.Contact, error)
	CreateContacts(ctx context.Context, cs []entity.Contact) ([]entity.Contact, error)
	UpdateContact(ctx context.Context, c entity.Contact) (*entity.Contact, error)
	DeleteContactByID(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	// Idempotency is optional; nil disables Idempotency-Key handling.
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	Goroutine   *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("contact.usecase").Start(ctx, name)
}
