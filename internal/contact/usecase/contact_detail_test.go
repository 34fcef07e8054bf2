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

func TestUsecase_ContactDetail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		mockFn   func(db *MockRepoDB)
		want     *entity.Contact
		wantCode goerror.Code
	}{
		{
			name: "Found",
			mockFn: func(db *MockRepoDB) {
				db.On("GetContactByID", mock.Anything, int64(1)).Return(&entity.Contact{ID: 1, FirstName: "John"}, nil).Once()
			},
			want: &entity.Contact{ID: 1, FirstName: "John"},
		},
		{
			name: "NotFound",
			mockFn: func(db *MockRepoDB) {
				db.On("GetContactByID", mock.Anything, int64(1)).Return(nil, goerror.ErrNotFound).Once()
			},
			wantCode: goerror.CodeNotFound,
		},
		{
			name: "RepoError",
			mockFn: func(db *MockRepoDB) {
				db.On("GetContactByID", mock.Anything, int64(1)).Return(nil, errors.New("boom")).Once()
			},
			wantCode: goerror.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, deps := setup(t, "")
			tt.mockFn(deps.db)

			got, err := uc.ContactDetail(ctx, ContactDetailInput{ID: 1})
			if tt.want == nil {
				assertCode(t, err, tt.wantCode)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			deps.db.AssertExpectations(t)
		})
	}
}
