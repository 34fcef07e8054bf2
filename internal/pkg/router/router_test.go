package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/phonebook/internal/pkg/config"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
	"github.com/shandysiswandi/phonebook/internal/pkg/instrument"
	"github.com/shandysiswandi/phonebook/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type listResponse struct {
	Items []string `json:"items"`
	total int
}

func (l listResponse) Meta() map[string]any { return map[string]any{"total": l.total} }

type createdResponse struct {
	ID int64 `json:"id"`
}

func (createdResponse) StatusCode() int { return http.StatusCreated }
func (createdResponse) Message() string { return "created" }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	var cfg config.Config
	if yaml != "" {
		v, err := config.NewViperFromBytes("yaml", []byte(yaml))
		require.NoError(t, err)
		cfg = v
	}

	return NewRouter(Config{Config: cfg, UUID: fixedID("generated-cid"), Instrument: instrument.NewNoop()})
}

func serve(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	r := newTestRouter(t, "")
	r.GET("/items", func(*Request) (any, error) {
		return listResponse{Items: []string{"a"}, total: 1}, nil
	})
	r.POST("/items", func(*Request) (any, error) {
		return createdResponse{ID: 9}, nil
	})
	r.DELETE("/items/:id", func(*Request) (any, error) {
		return nil, nil
	})

	rec := serve(r, http.MethodGet, "/items", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"message": "request has been successfully",
		"data":    map[string]any{"items": []any{"a"}},
		"meta":    map[string]any{"total": float64(1)},
	}, decode(t, rec))

	rec = serve(r, http.MethodPost, "/items", "", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "created", decode(t, rec)["message"])

	rec = serve(r, http.MethodDelete, "/items/1", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_ErrorCodec(t *testing.T) {
	r := newTestRouter(t, "")

	cases := []struct {
		name   string
		err    error
		status int
		body   map[string]any
	}{
		{
			name:   "Validator",
			err:    goerror.NewInvalidInput(validator.V10ValidationError{"phone": "phone must contain only digits"}),
			status: http.StatusUnprocessableEntity,
			body: map[string]any{
				"message": "Validation error",
				"error":   map[string]any{"phone": "phone must contain only digits"},
			},
		},
		{
			name:   "Fields",
			err:    goerror.NewInvalidInput(nil, "id", "invalid id format"),
			status: http.StatusUnprocessableEntity,
			body:   map[string]any{"message": "Validation error", "error": map[string]any{"id": "invalid id format"}},
		},
		{
			name:   "NotFound",
			err:    goerror.NewBusiness("contact not found", goerror.CodeNotFound),
			status: http.StatusNotFound,
			body:   map[string]any{"message": "contact not found"},
		},
		{
			name:   "Server",
			err:    goerror.NewServer(errors.New("db down")),
			status: http.StatusInternalServerError,
			body:   map[string]any{"message": "Internal server error"},
		},
		{
			name:   "Unclassified",
			err:    errors.New("plain"),
			status: http.StatusInternalServerError,
			body:   map[string]any{"message": "Internal server error"},
		},
	}

	for _, tc := range cases {
		r.GET("/err/"+strings.ToLower(tc.name), func(*Request) (any, error) { return nil, tc.err })
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(r, http.MethodGet, "/err/"+strings.ToLower(tc.name), "", nil)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.body, decode(t, rec))
		})
	}
}

func TestRouter_HealthAndFallbacks(t *testing.T) {
	r := newTestRouter(t, "")

	rec := serve(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["message"])

	rec = serve(r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(r, http.MethodPost, "/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_CorrelationID(t *testing.T) {
	r := newTestRouter(t, "")

	var seen string
	r.GET("/cid", func(req *Request) (any, error) {
		seen = instrument.GetCorrelationID(req.Context())
		return nil, nil
	})

	rec := serve(r, http.MethodGet, "/cid", "", nil)
	assert.Equal(t, "generated-cid", rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "generated-cid", seen)

	rec = serve(r, http.MethodGet, "/cid", "", map[string]string{HeaderRequestID: "from-proxy"})
	assert.Equal(t, "from-proxy", rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "from-proxy", seen)
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: \"/blocked/:id\"\n")
	r.GET("/blocked/:id", func(*Request) (any, error) { return nil, nil })
	r.GET("/open", func(*Request) (any, error) { return nil, nil })

	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/blocked/1", "", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/open", "", nil).Code)
}

func TestRouter_RecoversPanic(t *testing.T) {
	r := newTestRouter(t, "")
	r.GET("/panic", func(*Request) (any, error) { panic("boom") })

	rec := serve(r, http.MethodGet, "/panic", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec)["message"])
}

func TestRequest_Helpers(t *testing.T) {
	r := newTestRouter(t, "")

	type body struct {
		Name string `json:"name"`
	}

	r.POST("/things/:id", func(req *Request) (any, error) {
		id, err := req.GetParamInt64("id")
		if err != nil {
			return nil, err
		}
		size, err := req.GetQueryInt32("size", 10)
		if err != nil {
			return nil, err
		}
		var b body
		if err := req.DecodeBody(&b); err != nil {
			return nil, err
		}
		return map[string]any{"id": id, "size": size, "name": b.Name, "q": req.GetQuery("q"), "raw": req.GetQueryRaw("q")}, nil
	})

	rec := serve(r, http.MethodPost, "/things/5?q=+hi+", `{"name":"x"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"id": float64(5), "size": float64(10), "name": "x", "q": "hi", "raw": " hi "}, decode(t, rec)["data"])

	tests := map[string]string{
		"/things/abc":          `{"name":"x"}`,
		"/things/5?size=big":   `{"name":"x"}`,
		"/things/5?size=1":     `{"name":"x","extra":1}`,
		"/things/5?size=2":     `{"name":"x"}{}`,
		"/things/5?size=3&a=b": `not json`,
	}
	for target, payload := range tests {
		rec := serve(r, http.MethodPost, target, payload, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "h") }), mw("a"), nil, mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "h"}, order)
}
