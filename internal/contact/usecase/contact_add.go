package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
	"github.com/shandysiswandi/phonebook/internal/pkg/idempotency"
)

type ContactAddInput struct {
	IdempotencyKey string
	Contact        *ContactInput
}

func (s *Usecase) ContactAdd(ctx context.Context, in ContactAddInput) (*entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "ContactAdd")
	defer span.End()

	if err := s.validateContact(in.Contact); err != nil {
		return nil, err
	}

	var created *entity.Contact
	err := s.withIdempotency(ctx, "contact:add:", in.IdempotencyKey, func(ctx context.Context) error {
		c, err := s.repoDB.CreateContact(ctx, in.Contact.toEntity())
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo create contact", "error", err)
			return goerror.NewServer(err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "created", s.repoMessaging.PublishContactCreated, *created)

	return created, nil
}

// withIdempotency runs fn directly when no key is given or idempotency is
// disabled, otherwise at most once per key.
func (s *Usecase) withIdempotency(ctx context.Context, scope, key string, fn func(context.Context) error) error {
	if s.idemp == nil || key == "" {
		return fn(ctx)
	}

	err := s.idemp.Exec(ctx, scope+key, fn)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "idempotent request still in progress", "key", key)
		return goerror.NewBusiness("request with this idempotency key is in progress", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyCompleted), errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.WarnContext(ctx, "idempotency key already used", "key", key)
		return goerror.NewBusiness("request with this idempotency key was already processed", goerror.CodeConflict)
	}

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return gerr
	}

	slog.ErrorContext(ctx, "failed to run idempotent request", "key", key, "error", err)
	return goerror.NewServer(err)
}
