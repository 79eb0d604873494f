package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/controller"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func TestSessionStoreLifecycle(t *testing.T) {
	fetcher := client.FetcherFunc(func(context.Context, string) (schema.Form, error) {
		return schema.Form{}, nil
	})
	store := NewSessionStore(func() *controller.Controller { return controller.New(fetcher) })

	first, err := store.Create()
	require.NoError(t, err)
	second, err := store.Create()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, first.CSRF)
	assert.Len(t, first.ID, 32)
	assert.Equal(t, 2, store.Len())

	got, ok := store.Get(first.ID)
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = store.Get("")
	assert.False(t, ok)

	store.Delete(first.ID)
	_, ok = store.Get(first.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestSessionFlashIsTakenOnce(t *testing.T) {
	session := &Session{}
	session.SetFlash("hello")
	assert.Equal(t, "hello", session.TakeFlash())
	assert.Empty(t, session.TakeFlash())

	session.SetName("Jane")
	assert.Equal(t, "Jane", session.Name())
}

func TestSessionStoreRequiresFactory(t *testing.T) {
	_, err := NewSessionStore(nil).Create()
	assert.ErrorIs(t, err, ErrNoControllerFactory)
}
