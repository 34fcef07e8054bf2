package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/phonebook/internal/contact/entity"
)

// insertChunk keeps each multi-row INSERT well under the 65535 bind
// parameter limit.
const insertChunk = 1_000

var insertColumns = []string{"first_name", "last_name", "phone", "address"}

func (s *DB) CreateContact(ctx context.Context, c entity.Contact) (_ *entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "CreateContact")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sb.Insert(tableContacts).
		Columns(insertColumns...).
		Values(c.FirstName, c.LastName, c.Phone, c.Address).
		Suffix("RETURNING " + strings.Join(contactColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := s.queryContact(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	return created, nil
}

// CreateContacts inserts every contact in one transaction, returning them in
// input order with their assigned ids.
func (s *DB) CreateContacts(ctx context.Context, cs []entity.Contact) (_ []entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "CreateContacts")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	out := make([]entity.Contact, 0, len(cs))
	for start := 0; start < len(cs); start += insertChunk {
		chunk := cs[start:min(start+insertChunk, len(cs))]

		q := s.sb.Insert(tableContacts).Columns(insertColumns...)
		for _, c := range chunk {
			q = q.Values(c.FirstName, c.LastName, c.Phone, c.Address)
		}

		query, args, err := q.Suffix("RETURNING " + strings.Join(contactColumns, ", ")).ToSql()
		if err != nil {
			return nil, err
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return nil, s.mapError(err)
		}

		list, err := pgx.CollectRows(rows, pgx.RowToStructByName[contactRow])
		if err != nil {
			return nil, s.mapError(err)
		}
		for _, r := range list {
			out = append(out, r.toEntity())
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, s.mapError(err)
	}

	return out, nil
}
