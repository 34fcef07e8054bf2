package entity

import (
	"strconv"
	"strings"
	"time"
)

type Contact struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactFilter holds the optional list predicates. A nil field places no
// constraint; present fields are ANDed, each a case-sensitive substring match.
type ContactFilter struct {
	ID        *int64
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

func (f ContactFilter) IsEmpty() bool {
	return f.ID == nil && f.FirstName == nil && f.LastName == nil && f.Phone == nil && f.Address == nil
}

// Match reports whether c satisfies every present predicate. The id predicate
// compares decimal text, so filter 1 matches ids 1, 10, 21 and so on.
func (f ContactFilter) Match(c Contact) bool {
	if f.ID != nil && !strings.Contains(strconv.FormatInt(c.ID, 10), strconv.FormatInt(*f.ID, 10)) {
		return false
	}

	checks := []struct {
		want *string
		got  string
	}{
		{f.FirstName, c.FirstName},
		{f.LastName, c.LastName},
		{f.Phone, c.Phone},
		{f.Address, c.Address},
	}
	for _, ch := range checks {
		if ch.want != nil && !strings.Contains(ch.got, *ch.want) {
			return false
		}
	}

	return true
}

// ContactPage is one page of a filtered listing.
type ContactPage struct {
	Contacts []Contact
	Total    int64
	Page     int32
	Size     int32
}
