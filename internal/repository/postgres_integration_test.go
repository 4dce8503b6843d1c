//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Shivanand-hulikatti/activity-board/internal/database"
	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("activities"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		pool, err = pgxpool.New(ctx, connStr)
		if err != nil {
			return false
		}
		if pool.Ping(ctx) != nil {
			pool.Close()
			return false
		}
		return true
	}, 30*time.Second, 500*time.Millisecond)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return NewPostgresStore(pool)
}

func TestPostgresStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStore(t)

	require.NoError(t, store.Seed(ctx, DefaultSeed()))
	// Seeding twice keeps the existing rows.
	require.NoError(t, store.Seed(ctx, DefaultSeed()))

	catalog, err := store.Catalog(ctx)
	require.NoError(t, err)
	require.Equal(t, len(DefaultSeed()), catalog.Len())
	require.Equal(t, "Chess Club", catalog.Names()[0])

	art, ok := catalog.Get("Art Studio")
	require.True(t, ok)
	require.Empty(t, art.Participants)

	require.NoError(t, store.AddParticipant(ctx, "Art Studio", "new@mergington.edu"))
	require.ErrorIs(t, store.AddParticipant(ctx, "Art Studio", "new@mergington.edu"), ErrAlreadySignedUp)
	require.ErrorIs(t, store.AddParticipant(ctx, "Fake Club", "new@mergington.edu"), ErrNotFound)

	catalog, err = store.Catalog(ctx)
	require.NoError(t, err)
	art, _ = catalog.Get("Art Studio")
	require.Equal(t, []string{"new@mergington.edu"}, art.Participants)

	require.NoError(t, store.RemoveParticipant(ctx, "Art Studio", "new@mergington.edu"))
	require.ErrorIs(t, store.RemoveParticipant(ctx, "Art Studio", "new@mergington.edu"), ErrNotSignedUp)
	require.ErrorIs(t, store.RemoveParticipant(ctx, "Fake Club", "new@mergington.edu"), ErrNotFound)
}

func TestPostgresStoreConcurrentSignupsRespectCapacity(t *testing.T) {
	ctx := context.Background()
	store := newPostgresStore(t)
	require.NoError(t, store.Seed(ctx, []Seed{{Name: "Tiny", Activity: model.Activity{MaxParticipants: 3}}}))

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.AddParticipant(ctx, "Tiny", string(rune('a'+i))+"@x.com")
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, ErrActivityFull)
	}
	require.Equal(t, 3, ok)
}
