package db

import (
	"context"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/shandysiswandi/phonebook/internal/contact/entity"
)

func (s *DB) GetContactByID(ctx context.Context, id int64) (_ *entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "GetContactByID")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sb.Select(contactColumns...).From(tableContacts).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	c, err := s.queryContact(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	return c, nil
}

func (s *DB) ExistsContactByID(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsContactByID")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM contacts WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}
	return exists, nil
}

func (s *DB) ListContacts(ctx context.Context, filter entity.ContactFilter, page entity.PageRequest) (_ *entity.ContactPage, err error) {
	ctx, span := s.startSpan(ctx, "ListContacts")
	defer func() { s.endSpan(span, err) }()

	countQ, listQ := s.listQueries(filter, page)

	query, args, err := countQ.ToSql()
	if err != nil {
		return nil, err
	}

	var total int64
	if err = s.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, s.mapError(err)
	}

	out := &entity.ContactPage{Total: total, Page: page.Page, Size: page.Size, Contacts: []entity.Contact{}}
	if total == 0 || page.Size <= 0 || page.Offset() >= uint64(total) {
		return out, nil
	}

	contacts, err := s.queryContacts(ctx, listQ)
	if err != nil {
		return nil, s.mapError(err)
	}
	out.Contacts = contacts

	return out, nil
}

func (s *DB) SearchContacts(ctx context.Context, firstName, lastName string) (_ []entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "SearchContacts")
	defer func() { s.endSpan(span, err) }()

	q := s.sb.Select(contactColumns...).
		From(tableContacts).
		Where(squirrel.Or{
			squirrel.Expr("strpos(first_name, ?) > 0", firstName),
			squirrel.Expr("strpos(last_name, ?) > 0", lastName),
		}).
		OrderBy("id ASC")

	contacts, err := s.queryContacts(ctx, q)
	if err != nil {
		return nil, s.mapError(err)
	}
	return contacts, nil
}

// listQueries builds the count and page queries; an empty filter adds no
// WHERE clause.
func (s *DB) listQueries(filter entity.ContactFilter, page entity.PageRequest) (count, list squirrel.SelectBuilder) {
	count = s.sb.Select("count(*)").From(tableContacts)
	list = s.sb.Select(contactColumns...).
		From(tableContacts).
		OrderBy(orderBy(page)...).
		Limit(uint64(page.Size)).
		Offset(page.Offset())

	if !filter.IsEmpty() {
		cond := filterCond(filter)
		count = count.Where(cond)
		list = list.Where(cond)
	}

	return count, list
}

// filterCond uses strpos instead of LIKE so the value never needs escaping
// and matching stays case-sensitive.
func filterCond(f entity.ContactFilter) squirrel.And {
	var cond squirrel.And

	if f.ID != nil {
		cond = append(cond, squirrel.Expr("strpos(CAST(id AS TEXT), ?) > 0", strconv.FormatInt(*f.ID, 10)))
	}

	fields := []struct {
		column string
		value  *string
	}{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"phone", f.Phone},
		{"address", f.Address},
	}
	for _, fl := range fields {
		if fl.value != nil {
			cond = append(cond, squirrel.Expr("strpos("+fl.column+", ?) > 0", *fl.value))
		}
	}

	return cond
}

// orderBy only receives columns already resolved by entity.ParseSortField.
func orderBy(page entity.PageRequest) []string {
	if page.SortBy == "" {
		return []string{"id ASC"}
	}

	dir := "ASC"
	if page.Direction == entity.SortDesc {
		dir = "DESC"
	}
	if page.SortBy == "id" {
		return []string{"id " + dir}
	}
	return []string{page.SortBy + " " + dir, "id " + dir}
}
