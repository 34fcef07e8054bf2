package db

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/phonebook/internal/contact/entity"
	"github.com/shandysiswandi/phonebook/internal/pkg/goerror"
	"github.com/shandysiswandi/phonebook/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("phonebook"),
		tcpostgres.WithUsername("phonebook"),
		tcpostgres.WithPassword("phonebook"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(nat.Port("5432/tcp")),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := NewDB(pool, instrument.NewNoop())
	require.NoError(t, db.EnsureSchema(ctx))
	require.NoError(t, db.EnsureSchema(ctx))

	return db
}

func contactIDs(cs []entity.Contact) []int64 {
	out := make([]int64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestDB_Postgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	john, err := db.CreateContact(ctx, entity.Contact{FirstName: "John", LastName: "Doe", Phone: "5551234", Address: "12 Elm St"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), john.ID)
	assert.WithinDuration(t, time.Now(), john.CreatedAt, time.Minute)

	batch := []entity.Contact{{FirstName: "Joanne"}, {FirstName: "Ann", LastName: "Jones"}}
	for range 17 {
		batch = append(batch, entity.Contact{FirstName: "Filler"})
	}
	batch = append(batch, entity.Contact{FirstName: "John", LastName: "Major"})

	created, err := db.CreateContacts(ctx, batch)
	require.NoError(t, err)
	require.Len(t, created, 20)
	assert.Equal(t, int64(2), created[0].ID)
	assert.Equal(t, int64(21), created[19].ID)

	t.Run("GetAndExists", func(t *testing.T) {
		got, err := db.GetContactByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "12 Elm St", got.Address)

		_, err = db.GetContactByID(ctx, 999)
		assert.ErrorIs(t, err, goerror.ErrNotFound)

		ok, err := db.ExistsContactByID(ctx, 21)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = db.ExistsContactByID(ctx, 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("List", func(t *testing.T) {
		id := int64(1)
		first := "John"

		page, err := db.ListContacts(ctx, entity.ContactFilter{ID: &id, FirstName: &first}, entity.PageRequest{Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, []int64{1, 21}, contactIDs(page.Contacts))

		page, err = db.ListContacts(ctx, entity.ContactFilter{}, entity.PageRequest{Page: 2, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(21), page.Total)
		assert.Equal(t, []int64{21}, contactIDs(page.Contacts))

		page, err = db.ListContacts(ctx, entity.ContactFilter{FirstName: &first},
			entity.PageRequest{Size: 10, SortBy: "last_name", Direction: entity.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, []int64{21, 1}, contactIDs(page.Contacts))

		lower := "john"
		page, err = db.ListContacts(ctx, entity.ContactFilter{FirstName: &lower}, entity.PageRequest{Size: 10})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Contacts)
	})

	t.Run("Search", func(t *testing.T) {
		got, err := db.SearchContacts(ctx, "Jo", "Jo")
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 21}, contactIDs(got))
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		updated, err := db.UpdateContact(ctx, entity.Contact{ID: 1, FirstName: "John", LastName: "Smith", Address: "456 Main St"})
		require.NoError(t, err)
		assert.Equal(t, "Smith", updated.LastName)
		assert.Empty(t, updated.Phone)
		assert.Equal(t, john.CreatedAt.UTC(), updated.CreatedAt.UTC())

		_, err = db.UpdateContact(ctx, entity.Contact{ID: 999, FirstName: "X"})
		assert.ErrorIs(t, err, goerror.ErrNotFound)

		require.NoError(t, db.DeleteContactByID(ctx, 1))
		assert.ErrorIs(t, db.DeleteContactByID(ctx, 1), goerror.ErrNotFound)

		_, err = db.GetContactByID(ctx, 1)
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := db.CreateContacts(cctx, []entity.Contact{{FirstName: "Nope"}})
		assert.Error(t, err)
	})
}
