package localcache_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/localcache"
	"github.com/jhoicas/Directorio-api/pkg/logger"
)

// memCache implementación en memoria de ports.Cache para los tests.
// A propósito no lleva mutex: si el actor no serializara, el detector de
// carreras de `go test -race` lo delataría.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func newStore(t *testing.T) (*localcache.Store, *localcache.Actor) {
	t.Helper()
	actor := localcache.NewActor(newMemCache())
	t.Cleanup(actor.Close)
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return localcache.NewStore(actor, log), actor
}

func TestStore_PrependYRemove(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.PrependInvitation(ctx, entity.Invitation{ID: "1", Code: "AAA", Active: true}))
	require.NoError(t, store.PrependInvitation(ctx, entity.Invitation{ID: "2", Code: "BBB", Active: true}))

	list, err := store.Invitations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID, "la más reciente va primero")

	require.NoError(t, store.RemoveInvitation(ctx, "2"))
	list, err = store.Invitations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
}

// Mutaciones concurrentes (el equivalente de un create y un revoke
// simultáneos) no deben perder escrituras: el actor las serializa.
func TestActor_SerializaMutacionesConcurrentes(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv := entity.Invitation{ID: strconv.Itoa(i), CreatedAt: time.Now(), Active: true}
			_ = store.PrependInvitation(ctx, inv)
		}(i)
	}
	wg.Wait()

	list, err := store.Invitations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n, "ninguna escritura concurrente se pierde")
}

func TestStore_CacheCorruptaSeTrataComoVacia(t *testing.T) {
	mem := newMemCache()
	mem.data[localcache.KeyInvitations] = []byte("{esto no es JSON")
	actor := localcache.NewActor(mem)
	t.Cleanup(actor.Close)
	store := localcache.NewStore(actor, logger.New(logger.Config{Env: "test", Level: "error"}))

	list, err := store.Invitations(context.Background())
	require.NoError(t, err, "la corrupción no es fatal")
	assert.Empty(t, list)
}

func TestStore_Sesion(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	sess, err := store.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess, "sin login no hay sesión")

	require.NoError(t, store.SaveSession(ctx, entity.Session{ID: "op-1", DisplayName: "Carolina"}))
	sess, err = store.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Carolina", sess.DisplayName)
}
