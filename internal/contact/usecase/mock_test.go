package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/clock"
	"github.com/shandysiswandi/phonebook/internal/pkg/config"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
	"github.com/shandysiswandi/phonebook/internal/pkg/goroutine"
	"github.com/shandysiswandi/phonebook/internal/pkg/idempotency"
	"github.com/shandysiswandi/phonebook/internal/pkg/instrument"
	"github.com/shandysiswandi/phonebook/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type MockRepoDB struct {
	mock.Mock
}

func (m *MockRepoDB) GetContactByID(ctx context.Context, id int64) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockRepoDB) ExistsContactByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepoDB) ListContacts(ctx context.Context, filter entity.ContactFilter, page entity.PageRequest) (*entity.ContactPage, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContactPage), args.Error(1)
}

func (m *MockRepoDB) SearchContacts(ctx context.Context, firstName, lastName string) ([]entity.Contact, error) {
	args := m.Called(ctx, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contact), args.Error(1)
}

func (m *MockRepoDB) CreateContact(ctx context.Context, c entity.Contact) (*entity.Contact, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockRepoDB) CreateContacts(ctx context.Context, cs []entity.Contact) ([]entity.Contact, error) {
	args := m.Called(ctx, cs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contact), args.Error(1)
}

func (m *MockRepoDB) UpdateContact(ctx context.Context, c entity.Contact) (*entity.Contact, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockRepoDB) DeleteContactByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRepoMessaging struct {
	mock.Mock
}

func (m *MockRepoMessaging) PublishContactCreated(ctx context.Context, ev ContactEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockRepoMessaging) PublishContactUpdated(ctx context.Context, ev ContactEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockRepoMessaging) PublishContactDeleted(ctx context.Context, ev ContactEvent) error {
	return m.Called(ctx, ev).Error(0)
}

// fakeIdempotency remembers keys in memory with the same outcomes as the
// redis tracker.
type fakeIdempotency struct {
	mu    sync.Mutex
	state map[string]idempotency.State
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.mu.Lock()
	if f.state == nil {
		f.state = map[string]idempotency.State{}
	}
	switch f.state[key] {
	case idempotency.StateInProgress:
		f.mu.Unlock()
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		f.mu.Unlock()
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		f.mu.Unlock()
		return idempotency.ErrAlreadyFailed
	}
	f.state[key] = idempotency.StateInProgress
	f.mu.Unlock()

	err := fn(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state[key] = idempotency.StateFailed
		return err
	}
	f.state[key] = idempotency.StateCompleted
	return nil
}

type fixedNumberID int64

func (f fixedNumberID) Generate() int64 { return int64(f) }

type testDeps struct {
	db   *MockRepoDB
	mq   *MockRepoMessaging
	idem *fakeIdempotency
	gm   *goroutine.Manager
}

// wait drains background publishing before expectations are checked.
func (d *testDeps) wait(t *testing.T) {
	t.Helper()
	require.NoError(t, d.gm.Wait())
}

func setup(t *testing.T, yaml string) (*Usecase, *testDeps) {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	if yaml == "" {
		yaml = "modules:\n  contact:\n    enabled: true\n"
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	deps := &testDeps{
		db:   new(MockRepoDB),
		mq:   new(MockRepoMessaging),
		idem: &fakeIdempotency{},
		gm:   goroutine.NewManager(4),
	}

	uc := New(Dependency{
		RepoDB:        deps.db,
		RepoMessaging: deps.mq,
		Idempotency:   deps.idem,
		Validator:     v,
		Config:        cfg,
		UID:           fixedNumberID(99),
		Clock:         clock.NewFixed(testNow),
		Instrument:    instrument.NewNoop(),
		Goroutine:     deps.gm,
	})

	return uc, deps
}

func assertCode(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code())
	return gerr
}

// fieldKeys returns the keys of a validation error, from either the validator
// map or explicit fields.
func fieldKeys(t *testing.T, err error) []string {
	t.Helper()

	gerr := assertCode(t, err, goerror.CodeInvalidInput)

	var keys []string
	var verr validator.V10ValidationError
	if gerr.Unwrap() == nil {
		for k := range gerr.Fields() {
			keys = append(keys, k)
		}
		return keys
	}
	require.ErrorAs(t, err, &verr)
	for k := range verr.Values() {
		keys = append(keys, k)
	}
	return keys
}

func ptr[T any](v T) *T { return &v }
