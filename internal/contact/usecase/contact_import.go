package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

type (
	ContactImportInput struct {
		IdempotencyKey string
		Contacts       []ContactInput
	}

	ContactImportOutput struct {
		Created int
	}
)

// ContactImport creates every contact or none of them.
func (s *Usecase) ContactImport(ctx context.Context, in ContactImportInput) (*ContactImportOutput, error) {
	ctx, span := s.startSpan(ctx, "ContactImport")
	defer span.End()

	if err := s.validateContacts(in.Contacts); err != nil {
		return nil, err
	}

	var created []entity.Contact
	err := s.withIdempotency(ctx, "contact:import:", in.IdempotencyKey, func(ctx context.Context) error {
		cs, err := s.repoDB.CreateContacts(ctx, lo.Map(in.Contacts, func(item ContactInput, _ int) entity.Contact {
			return item.toEntity()
		}))
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo create contacts", "count", len(in.Contacts), "error", err)
			return goerror.NewServer(err)
		}
		created = cs
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "created", s.repoMessaging.PublishContactCreated, created...)

	return &ContactImportOutput{Created: len(created)}, nil
}
