package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

// ContactFilterInput carries raw filter values; an empty string means absent.
type ContactFilterInput struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Sort      string
	Direction string
}

type ContactListInput struct {
	ContactFilterInput
	Page int32
	Size int32
}

type ContactListOutput struct {
	Page     int32
	Size     int32
	Total    int64
	Contacts []entity.Contact
}

func (s *Usecase) ContactList(ctx context.Context, in ContactListInput) (*ContactListOutput, error) {
	ctx, span := s.startSpan(ctx, "ContactList")
	defer span.End()

	page := entity.PageRequest{Page: in.Page, Size: in.Size}
	if err := s.validatePageable(&page); err != nil {
		return nil, err
	}

	filter, err := buildQuery(in.ContactFilterInput, &page)
	if err != nil {
		return nil, err
	}

	result, err := s.repoDB.ListContacts(ctx, filter, page)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list contacts", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ContactListOutput{
		Page:     in.Page,
		Size:     in.Size,
		Total:    result.Total,
		Contacts: result.Contacts,
	}, nil
}

// buildQuery resolves the sort into page and turns the present raw values
// into a filter.
func buildQuery(in ContactFilterInput, page *entity.PageRequest) (entity.ContactFilter, error) {
	var filter entity.ContactFilter

	if in.Sort != "" {
		col, ok := entity.ParseSortField(in.Sort)
		if !ok {
			return filter, goerror.NewInvalidInput(nil, "sort", "sort must be one of id, first_name, last_name, phone, address")
		}
		page.SortBy = col
		page.Direction = entity.ParseSortDirection(in.Direction)
	}

	if in.ID != "" {
		id, err := strconv.ParseInt(in.ID, 10, 64)
		if err != nil {
			return filter, goerror.NewInvalidInput(nil, "id", "invalid id format")
		}
		filter.ID = &id
	}

	optional := []struct {
		raw string
		dst **string
	}{
		{in.FirstName, &filter.FirstName},
		{in.LastName, &filter.LastName},
		{in.Phone, &filter.Phone},
		{in.Address, &filter.Address},
	}
	for _, o := range optional {
		if o.raw != "" {
			v := o.raw
			*o.dst = &v
		}
	}

	return filter, nil
}
