package inbound

import (
	"context"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/contact/usecase"
	"github.com/shandysiswandi/phonebook/internal/pkg/router"
)

type uc interface {
	ContactList(ctx context.Context, in usecase.ContactListInput) (*usecase.ContactListOutput, error)
	ContactSearch(ctx context.Context, in usecase.ContactSearchInput) ([]entity.Contact, error)
	ContactDetail(ctx context.Context, in usecase.ContactDetailInput) (*entity.Contact, error)
	ContactAdd(ctx context.Context, in usecase.ContactAddInput) (*entity.Contact, error)
	ContactUpdate(ctx context.Context, in usecase.ContactUpdateInput) (*entity.Contact, error)
	ContactDelete(ctx context.Context, in usecase.ContactDeleteInput) error
	ContactExport(ctx context.Context, in usecase.ContactFilterInput) (*usecase.ContactExportOutput, error)
	ContactImport(ctx context.Context, in usecase.ContactImportInput) (*usecase.ContactImportOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/contacts", end.ContactList)
	r.POST("/api/v1/contacts", end.ContactAdd)
	r.GET("/api/v1/contacts/:id", end.ContactDetail)
	r.PUT("/api/v1/contacts/:id", end.ContactUpdate)
	r.DELETE("/api/v1/contacts/:id", end.ContactDelete)
	//
	r.GET("/api/v1/contacts-search", end.ContactSearch)
	r.GET("/api/v1/contacts-export", end.ContactExport)
	r.POST("/api/v1/contacts-import", end.ContactImport)
}
