package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
app:
  server:
    max_goroutine: 8
    http:
      address: "127.0.0.1:0"
      read_timeout_seconds: 5
      read_header_timeout_seconds: 5
      write_timeout_seconds: 5
      idle_timeout_seconds: 5
instrument:
  enabled: false
  service_name: phonebook-test
database:
  driver: memory
redis:
  enabled: false
messaging:
  enabled: false
modules:
  contact:
    enabled: true
`

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func startApp(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	t.Setenv("CONFIG_PATH", path)

	application := New()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errs := application.Serve(l)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		application.Stop(ctx)
		assert.NoError(t, <-errs)
	})

	return "http://" + l.Addr().String()
}

func do(t *testing.T, method, url string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func TestApp_ContactRoundTrip(t *testing.T) {
	base := startApp(t)

	code, env := do(t, http.MethodGet, base+"/health", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.Message)

	code, env = do(t, http.MethodPost, base+"/api/v1/contacts", map[string]string{
		"first_name": "John", "last_name": "Doe", "phone": "5551234",
	})
	require.Equal(t, http.StatusCreated, code)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.ID)

	code, _ = do(t, http.MethodPut, base+"/api/v1/contacts/1", map[string]string{
		"first_name": "John", "last_name": "Smith", "address": "456 Main St",
	})
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, http.MethodDelete, base+"/api/v1/contacts/1", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = do(t, http.MethodGet, base+"/api/v1/contacts/1", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
