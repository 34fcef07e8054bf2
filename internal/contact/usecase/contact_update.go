package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

type ContactUpdateInput struct {
	ID      int64
	Contact *ContactInput
}

// ContactUpdate replaces every mutable field. The payload is validated before
// the contact is looked up, so an invalid body on a missing id is a
// validation error.
func (s *Usecase) ContactUpdate(ctx context.Context, in ContactUpdateInput) (*entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "ContactUpdate")
	defer span.End()

	if err := s.validateContact(in.Contact); err != nil {
		return nil, err
	}

	exists, err := s.repoDB.ExistsContactByID(ctx, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check contact exists", "contact_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		slog.WarnContext(ctx, "contact not found", "contact_id", in.ID)
		return nil, goerror.NewBusiness("contact not found", goerror.CodeNotFound)
	}

	c := in.Contact.toEntity()
	c.ID = in.ID

	updated, err := s.repoDB.UpdateContact(ctx, c)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "contact removed before update", "contact_id", in.ID)
		return nil, goerror.NewBusiness("contact not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update contact", "contact_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.emit(ctx, "updated", s.repoMessaging.PublishContactUpdated, *updated)

	return updated, nil
}
