package db

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
)

// UpdateContact replaces the mutable fields. A row deleted concurrently
// yields goerror.ErrNotFound.
func (s *DB) UpdateContact(ctx context.Context, c entity.Contact) (_ *entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "UpdateContact")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sb.Update(tableContacts).
		Set("first_name", c.FirstName).
		Set("last_name", c.LastName).
		Set("phone", c.Phone).
		Set("address", c.Address).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING " + strings.Join(contactColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := s.queryContact(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	return updated, nil
}

func (s *DB) DeleteContactByID(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteContactByID")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
