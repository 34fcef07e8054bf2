package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNewLogger_RenamesAndEnriches(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LoggerOptions{ServiceName: "phonebook"})

	ctx := SetCorrelationID(context.Background(), "cid-123")
	log.InfoContext(ctx, "contact created", "contact_id", 7)

	line := decodeLine(t, &buf)
	assert.Equal(t, "contact created", line["msg"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "cid-123", line["_cID"])
	assert.Equal(t, "phonebook", line["service"])
	assert.Contains(t, line, "ts")
	assert.Contains(t, line["file"], "internal/pkg/instrument/logging_test.go:")
	assert.InDelta(t, 7, line["contact_id"], 0)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LoggerOptions{Level: "warn"})

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestNewLogger_Masks(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LoggerOptions{MaskFields: []string{"Phone", " address "}})

	log.Info("request received",
		"phone", "0812345",
		"body", `{"first_name":"John","phone":"0812345"}`,
		"payload", map[string]any{"address": "Main St", "nested": []any{map[string]any{"phone": "1"}}},
		slog.Group("req", slog.String("address", "x"), slog.String("path", "/api")),
	)

	line := decodeLine(t, &buf)
	assert.Equal(t, masked, line["phone"])
	assert.JSONEq(t, `{"first_name":"John","phone":"***"}`, line["body"].(string))
	assert.Equal(t, map[string]any{
		"address": masked,
		"nested":  []any{map[string]any{"phone": masked}},
	}, line["payload"])
	assert.Equal(t, map[string]any{"address": masked, "path": "/api"}, line["req"])
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx := SetCorrelationID(context.Background(), "abc")
	assert.Equal(t, "abc", GetCorrelationID(ctx))
}

func TestNewNoop(t *testing.T) {
	ins, err := New(context.Background(), &Config{Enabled: false, ServiceName: "phonebook"})
	require.NoError(t, err)

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()

	counter, err := ins.Meter("test").Int64Counter("count")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	assert.NoError(t, ins.Shutdown(context.Background()))
}
