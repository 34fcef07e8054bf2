package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

const contactExportPageSize int32 = 1_000

type ContactExportOutput struct {
	Contacts []entity.Contact
}

// ContactExport returns every contact matching the filter, paging through
// storage in chunks of modules.contact.export_page_size.
func (s *Usecase) ContactExport(ctx context.Context, in ContactFilterInput) (*ContactExportOutput, error) {
	ctx, span := s.startSpan(ctx, "ContactExport")
	defer span.End()

	size := s.cfg.GetInt32("modules.contact.export_page_size")
	if size <= 0 {
		size = contactExportPageSize
	}

	page := entity.PageRequest{Page: 0, Size: size}
	filter, err := buildQuery(in, &page)
	if err != nil {
		return nil, err
	}

	var (
		contacts []entity.Contact
		total    int64
	)

	for {
		result, err := s.repoDB.ListContacts(ctx, filter, page)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo export contacts", "page", page.Page, "error", err)
			return nil, goerror.NewServer(err)
		}

		if page.Page == 0 {
			total = result.Total
			if total == 0 {
				break
			}
			contacts = make([]entity.Contact, 0, min(total, int64(size)))
		}

		contacts = append(contacts, result.Contacts...)

		if int64(len(contacts)) >= total || len(result.Contacts) == 0 {
			break
		}

		page.Page++
	}

	return &ContactExportOutput{Contacts: contacts}, nil
}
