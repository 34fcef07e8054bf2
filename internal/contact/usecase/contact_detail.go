package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

type ContactDetailInput struct {
	ID int64
}

func (s *Usecase) ContactDetail(ctx context.Context, in ContactDetailInput) (*entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "ContactDetail")
	defer span.End()

	return s.getContact(ctx, in.ID)
}

func (s *Usecase) getContact(ctx context.Context, id int64) (*entity.Contact, error) {
	c, err := s.repoDB.GetContactByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "contact not found", "contact_id", id)
		return nil, goerror.NewBusiness("contact not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get contact by id", "contact_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return c, nil
}
