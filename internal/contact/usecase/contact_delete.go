package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

type ContactDeleteInput struct {
	ID int64
}

func (s *Usecase) ContactDelete(ctx context.Context, in ContactDeleteInput) error {
	ctx, span := s.startSpan(ctx, "ContactDelete")
	defer span.End()

	c, err := s.getContact(ctx, in.ID)
	if err != nil {
		return err
	}

	err = s.repoDB.DeleteContactByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "contact removed before delete", "contact_id", in.ID)
		return goerror.NewBusiness("contact not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete contact", "contact_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.emit(ctx, "deleted", s.repoMessaging.PublishContactDeleted, *c)

	return nil
}
