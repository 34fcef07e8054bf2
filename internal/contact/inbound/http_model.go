package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/contact/usecase"
)

const headerIdempotencyKey = "Idempotency-Key"

type ContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (r ContactRequest) toInput() *usecase.ContactInput {
	return &usecase.ContactInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address:   r.Address,
	}
}

type ContactImportRequest []ContactRequest

type ContactResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toContactResponse(c entity.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toContactResponses(cs []entity.Contact) []ContactResponse {
	if len(cs) == 0 {
		return []ContactResponse{}
	}
	return lo.Map(cs, func(c entity.Contact, _ int) ContactResponse { return toContactResponse(c) })
}

type ContactCreatedResponse struct {
	ContactResponse
}

func (ContactCreatedResponse) StatusCode() int { return http.StatusCreated }
func (ContactCreatedResponse) Message() string { return "contact has been created" }

type ContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r ContactsResponse) Meta() map[string]any {
	return map[string]any{
		"total":       r.total,
		"size":        r.size,
		"page":        r.page,
		"total_pages": entity.TotalPages(r.total, r.size),
	}
}

type ContactSearchResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

type ContactExportResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

type ContactImportResponse struct {
	Created int `json:"created"`
}

func (ContactImportResponse) StatusCode() int { return http.StatusCreated }
