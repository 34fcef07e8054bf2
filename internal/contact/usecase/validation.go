package usecase

import (
	"errors"
	"fmt"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
	"github.com/shandysiswandi/phonebook/internal/pkg/validator"
)

const (
	importMinItems = 1
	importMaxItems = 10_000
)

// ContactInput is the client supplied part of a contact. Empty optional
// fields mean absent.
type ContactInput struct {
	FirstName string `validate:"required,alphanum"`
	LastName  string `validate:"omitempty,alphanum"`
	Phone     string `validate:"omitempty,digits"`
	Address   string
}

func (in ContactInput) toEntity() entity.Contact {
	return entity.Contact{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Address:   in.Address,
	}
}

func (s *Usecase) validateContact(in *ContactInput) error {
	if in == nil {
		return goerror.NewInvalidInput(nil, "contact", "contact is required")
	}

	if err := s.validator.Validate(*in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return nil
}

func (s *Usecase) validatePageable(page *entity.PageRequest) error {
	if page == nil {
		return goerror.NewInvalidInput(nil, "page", "pagination is required")
	}

	if err := s.validator.Validate(*page); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return nil
}

func validateSearchQuery(query string) error {
	if query == "" {
		return goerror.NewInvalidInput(nil, "query", "query is required")
	}
	return nil
}

// validateContacts checks every item and reports failures keyed by position,
// e.g. "contacts[3].phone".
func (s *Usecase) validateContacts(items []ContactInput) error {
	if len(items) < importMinItems || len(items) > importMaxItems {
		return goerror.NewInvalidInput(nil, "contacts",
			fmt.Sprintf("contacts must contain between %d and %d items", importMinItems, importMaxItems))
	}

	var kv []string
	for i, item := range items {
		err := s.validator.Validate(item)
		if err == nil {
			continue
		}

		var verr validator.V10ValidationError
		if !errors.As(err, &verr) {
			return goerror.NewServer(err)
		}

		for field, msg := range verr.Values() {
			kv = append(kv, fmt.Sprintf("contacts[%d].%s", i, field), msg)
		}
	}

	if len(kv) > 0 {
		return goerror.NewInvalidInput(nil, kv...)
	}

	return nil
}
