package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/contact/usecase"
	"github.com/shandysiswandi/phonebook/internal/pkg/router"
)

// HTTPEndpoint exposes the contact book over HTTP.
type HTTPEndpoint struct {
	uc uc
}

func filterFromQuery(r *router.Request) usecase.ContactFilterInput {
	return usecase.ContactFilterInput{
		ID:        r.GetQueryRaw("id"),
		FirstName: r.GetQueryRaw("first_name"),
		LastName:  r.GetQueryRaw("last_name"),
		Phone:     r.GetQueryRaw("phone"),
		Address:   r.GetQueryRaw("address"),
		Sort:      r.GetQueryRaw("sort"),
		Direction: r.GetQueryRaw("direction"),
	}
}

// ContactList returns one page of contacts matching the optional filters.
// @Summary List contacts
// @Description Returns a zero-based page of contacts. Every filter is a case-sensitive substring match; present filters are combined with AND.
// @Tags Contacts
// @Produce json
// @Param id query string false "Substring of the decimal contact id"
// @Param first_name query string false "Substring of first name"
// @Param last_name query string false "Substring of last name"
// @Param phone query string false "Substring of phone"
// @Param address query string false "Substring of address"
// @Param sort query string false "Sort field: id, first_name, last_name, phone, address"
// @Param direction query string false "asc or desc"
// @Param page query int false "Zero-based page (default 0)"
// @Param size query int false "Page size (default 10)"
// @Success 200 {object} router.successResponse{data=ContactsResponse} "Contact page"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts [get]
func (h *HTTPEndpoint) ContactList(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page", entity.DefaultPage)
	if err != nil {
		return nil, err
	}

	size, err := r.GetQueryInt32("size", entity.DefaultSize)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ContactList(r.Context(), usecase.ContactListInput{
		ContactFilterInput: filterFromQuery(r),
		Page:               page,
		Size:               size,
	})
	if err != nil {
		return nil, err
	}

	return ContactsResponse{
		Contacts: toContactResponses(resp.Contacts),
		total:    resp.Total,
		size:     resp.Size,
		page:     resp.Page,
	}, nil
}

// @Summary Search contacts
// @Description Returns every contact whose first or last name contains the query (case-sensitive).
// @Tags Contacts
// @Produce json
// @Param query query string true "Substring to look for"
// @Success 200 {object} router.successResponse{data=ContactSearchResponse} "Matching contacts"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts-search [get]
func (h *HTTPEndpoint) ContactSearch(r *router.Request) (any, error) {
	contacts, err := h.uc.ContactSearch(r.Context(), usecase.ContactSearchInput{Query: r.GetQueryRaw("query")})
	if err != nil {
		return nil, err
	}

	return ContactSearchResponse{Contacts: toContactResponses(contacts)}, nil
}

// @Summary Get contact
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} router.successResponse{data=ContactResponse} "Contact"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "Contact not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts/{id} [get]
func (h *HTTPEndpoint) ContactDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	c, err := h.uc.ContactDetail(r.Context(), usecase.ContactDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toContactResponse(*c), nil
}

// @Summary Add contact
// @Description Creates a contact. A repeated Idempotency-Key is rejected with 409 when idempotency is enabled.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated request key"
// @Param request body ContactRequest true "Contact payload"
// @Success 201 {object} router.successResponse{data=ContactResponse} "Created contact"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Idempotency key already used"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts [post]
func (h *HTTPEndpoint) ContactAdd(r *router.Request) (any, error) {
	var req ContactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	c, err := h.uc.ContactAdd(r.Context(), usecase.ContactAddInput{
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
		Contact:        req.toInput(),
	})
	if err != nil {
		return nil, err
	}

	return ContactCreatedResponse{ContactResponse: toContactResponse(*c)}, nil
}

// @Summary Update contact
// @Description Replaces first name, last name, phone and address of a contact.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body ContactRequest true "Contact payload"
// @Success 200 {object} router.successResponse{data=ContactResponse} "Updated contact"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Contact not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts/{id} [put]
func (h *HTTPEndpoint) ContactUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ContactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	c, err := h.uc.ContactUpdate(r.Context(), usecase.ContactUpdateInput{ID: id, Contact: req.toInput()})
	if err != nil {
		return nil, err
	}

	return toContactResponse(*c), nil
}

// @Summary Delete contact
// @Tags Contacts
// @Param id path int true "Contact ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 404 {object} router.errorResponse "Contact not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts/{id} [delete]
func (h *HTTPEndpoint) ContactDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.ContactDelete(r.Context(), usecase.ContactDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// @Summary Export contacts
// @Description Returns every contact matching the list filters, unpaginated.
// @Tags Contacts
// @Produce json
// @Param id query string false "Substring of the decimal contact id"
// @Param first_name query string false "Substring of first name"
// @Param last_name query string false "Substring of last name"
// @Param phone query string false "Substring of phone"
// @Param address query string false "Substring of address"
// @Param sort query string false "Sort field"
// @Param direction query string false "asc or desc"
// @Success 200 {object} router.successResponse{data=ContactExportResponse} "All matching contacts"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts-export [get]
func (h *HTTPEndpoint) ContactExport(r *router.Request) (any, error) {
	resp, err := h.uc.ContactExport(r.Context(), filterFromQuery(r))
	if err != nil {
		return nil, err
	}

	return ContactExportResponse{Contacts: toContactResponses(resp.Contacts)}, nil
}

// @Summary Import contacts
// @Description Creates 1 to 10000 contacts atomically: either all are stored or none.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated request key"
// @Param request body ContactImportRequest true "Contacts"
// @Success 201 {object} router.successResponse{data=ContactImportResponse} "Import result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Idempotency key already used"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/contacts-import [post]
func (h *HTTPEndpoint) ContactImport(r *router.Request) (any, error) {
	var req ContactImportRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ContactImport(r.Context(), usecase.ContactImportInput{
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
		Contacts: lo.Map(req, func(item ContactRequest, _ int) usecase.ContactInput {
			return *item.toInput()
		}),
	})
	if err != nil {
		return nil, err
	}

	return ContactImportResponse{Created: resp.Created}, nil
}
