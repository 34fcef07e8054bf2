package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

type ContactSearchInput struct {
	Query string
}

// ContactSearch returns every contact whose first or last name contains the
// query, in storage order.
func (s *Usecase) ContactSearch(ctx context.Context, in ContactSearchInput) ([]entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "ContactSearch")
	defer span.End()

	if err := validateSearchQuery(in.Query); err != nil {
		return nil, err
	}

	contacts, err := s.repoDB.SearchContacts(ctx, in.Query, in.Query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo search contacts", "query", in.Query, "error", err)
		return nil, goerror.NewServer(err)
	}

	return contacts, nil
}
