package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"ID":         "id",
		"FirstName":  "first_name",
		"firstName":  "first_name",
		"last_name":  "last_name",
		"HTTPServer": "http_server",
		"Address2":   "address2",
		"contactID":  "contact_id",
	}

	for in, want := range cases {
		assert.Equal(t, want, ToLowerSnake(in), "input %q", in)
	}
}
