// Package memdb is a process local contact store with the same filter, sort
// and paging semantics as the postgres store.
package memdb

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/clock"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
	"go.uber.org/atomic"
)

type DB struct {
	clock clock.Clocker
	seq   *atomic.Int64

	mu    sync.RWMutex
	rows  map[int64]entity.Contact
	order []int64
}

func NewDB(clk clock.Clocker) *DB {
	if clk == nil {
		clk = clock.New()
	}
	return &DB{clock: clk, seq: atomic.NewInt64(0), rows: map[int64]entity.Contact{}}
}

func (s *DB) GetContactByID(ctx context.Context, id int64) (*entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.rows[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &c, nil
}

func (s *DB) ExistsContactByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rows[id]
	return ok, nil
}

func (s *DB) ListContacts(ctx context.Context, filter entity.ContactFilter, page entity.PageRequest) (*entity.ContactPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := filter.IsEmpty()

	s.mu.RLock()
	matched := make([]entity.Contact, 0, len(s.order))
	for _, id := range s.order {
		if c := s.rows[id]; all || filter.Match(c) {
			matched = append(matched, c)
		}
	}
	s.mu.RUnlock()

	if page.SortBy != "" {
		sortContacts(matched, page.SortBy, page.Direction)
	}

	out := &entity.ContactPage{Total: int64(len(matched)), Page: page.Page, Size: page.Size, Contacts: []entity.Contact{}}
	if page.Size <= 0 {
		return out, nil
	}

	start := page.Offset()
	if start >= uint64(len(matched)) {
		return out, nil
	}
	end := min(start+uint64(page.Size), uint64(len(matched)))
	out.Contacts = matched[start:end]

	return out, nil
}

func (s *DB) SearchContacts(ctx context.Context, firstName, lastName string) ([]entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entity.Contact{}
	for _, id := range s.order {
		c := s.rows[id]
		if strings.Contains(c.FirstName, firstName) || strings.Contains(c.LastName, lastName) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *DB) CreateContact(ctx context.Context, c entity.Contact) (*entity.Contact, error) {
	created, err := s.CreateContacts(ctx, []entity.Contact{c})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// CreateContacts inserts all rows under one lock, so readers never observe a
// partial batch.
func (s *DB) CreateContacts(ctx context.Context, cs []entity.Contact) ([]entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Contact, 0, len(cs))
	for _, c := range cs {
		c.ID = s.seq.Inc()
		c.CreatedAt = now
		c.UpdatedAt = now
		s.rows[c.ID] = c
		s.order = append(s.order, c.ID)
		out = append(out, c)
	}
	return out, nil
}

func (s *DB) UpdateContact(ctx context.Context, c entity.Contact) (*entity.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.rows[c.ID]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = s.clock.Now()
	s.rows[c.ID] = c
	return &c, nil
}

func (s *DB) DeleteContactByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(s.rows, id)
	s.order = slices.DeleteFunc(s.order, func(v int64) bool { return v == id })
	return nil
}

// sortContacts orders by column with id as tie breaker, like ORDER BY col, id.
func sortContacts(cs []entity.Contact, column string, dir entity.SortDirection) {
	key := func(c entity.Contact) string {
		switch column {
		case "first_name":
			return c.FirstName
		case "last_name":
			return c.LastName
		case "phone":
			return c.Phone
		case "address":
			return c.Address
		}
		return ""
	}

	slices.SortStableFunc(cs, func(a, b entity.Contact) int {
		var n int
		if column == "id" {
			n = cmp.Compare(a.ID, b.ID)
		} else {
			n = cmp.Or(strings.Compare(key(a), key(b)), cmp.Compare(a.ID, b.ID))
		}
		if dir == entity.SortDesc {
			return -n
		}
		return n
	})
}

