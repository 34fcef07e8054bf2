package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_ContactImport(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, deps := setup(t, "")

		in := []ContactInput{{FirstName: "John", Phone: "1"}, {FirstName: "Jane", LastName: "Roe"}}
		created := []entity.Contact{{ID: 1, FirstName: "John", Phone: "1"}, {ID: 2, FirstName: "Jane", LastName: "Roe"}}
		deps.db.On("CreateContacts", mock.Anything, []entity.Contact{
			{FirstName: "John", Phone: "1"}, {FirstName: "Jane", LastName: "Roe"},
		}).Return(created, nil).Once()
		for _, c := range created {
			deps.mq.On("PublishContactCreated", mock.Anything, ContactEvent{EventID: 99, Contact: c, OccurredAt: testNow}).
				Return(nil).Once()
		}

		got, err := uc.ContactImport(ctx, ContactImportInput{Contacts: in})
		require.NoError(t, err)
		assert.Equal(t, &ContactImportOutput{Created: 2}, got)

		deps.wait(t)
		deps.db.AssertExpectations(t)
		deps.mq.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		uc, deps := setup(t, "")

		_, err := uc.ContactImport(ctx, ContactImportInput{})
		assert.Equal(t, []string{"contacts"}, fieldKeys(t, err))
		deps.db.AssertNotCalled(t, "CreateContacts", mock.Anything, mock.Anything)
	})

	t.Run("TooMany", func(t *testing.T) {
		uc, deps := setup(t, "")

		items := make([]ContactInput, importMaxItems+1)
		_, err := uc.ContactImport(ctx, ContactImportInput{Contacts: items})
		assert.Equal(t, []string{"contacts"}, fieldKeys(t, err))
		deps.db.AssertNotCalled(t, "CreateContacts", mock.Anything, mock.Anything)
	})

	t.Run("InvalidItemsKeyedByIndex", func(t *testing.T) {
		uc, deps := setup(t, "")

		_, err := uc.ContactImport(ctx, ContactImportInput{Contacts: []ContactInput{
			{FirstName: "John"},
			{FirstName: "", Phone: "x"},
		}})
		assert.ElementsMatch(t, []string{"contacts[1].first_name", "contacts[1].phone"}, fieldKeys(t, err))
		deps.db.AssertNotCalled(t, "CreateContacts", mock.Anything, mock.Anything)
	})

	t.Run("RepoErrorCreatesNothing", func(t *testing.T) {
		uc, deps := setup(t, "")

		deps.db.On("CreateContacts", mock.Anything, mock.Anything).Return(nil, errors.New("unique violation")).Once()

		_, err := uc.ContactImport(ctx, ContactImportInput{Contacts: []ContactInput{{FirstName: "John"}}})
		assertCode(t, err, goerror.CodeInternal)

		deps.wait(t)
		deps.mq.AssertNotCalled(t, "PublishContactCreated", mock.Anything, mock.Anything)
	})

	t.Run("WithoutIdempotencyStore", func(t *testing.T) {
		uc, deps := setup(t, "")
		uc.idemp = nil

		deps.db.On("CreateContacts", mock.Anything, mock.Anything).Return([]entity.Contact{{ID: 1}}, nil).Twice()
		deps.mq.On("PublishContactCreated", mock.Anything, mock.Anything).Return(nil).Twice()

		in := ContactImportInput{IdempotencyKey: "same", Contacts: []ContactInput{{FirstName: "John"}}}
		_, err := uc.ContactImport(ctx, in)
		require.NoError(t, err)
		_, err = uc.ContactImport(ctx, in)
		require.NoError(t, err)

		deps.wait(t)
		deps.db.AssertExpectations(t)
	})
}
