package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-tales/nomadtales/internal/models"
)

func TestRequireAuth_AuthenticatedFallsThrough(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(backend)
	app.session.SetAuthenticated(models.User{ID: 7, Username: "ana"})

	called := false
	err := app.requireAuth(func(ctx context.Context) error {
		called = true
		return nil
	})(context.Background())

	require.NoError(t, err)
	assert.True(t, called)
	assert.Zero(t, backend.loginCalls)
}

func TestRequireAuth_UnauthenticatedGoesToLogin(t *testing.T) {
	backend := &fakeBackend{loginUser: models.User{ID: 7, Username: "ana"}}
	app, out := newTestApp(backend)
	stubInput(t, []string{"ana"}, []string{"secret"})

	called := false
	err := app.requireAuth(func(ctx context.Context) error {
		called = true
		return nil
	})(context.Background())

	require.NoError(t, err)
	assert.False(t, called, "the protected command must not run")
	assert.Equal(t, 1, backend.loginCalls)
	assert.Contains(t, out.String(), "You need to sign in first.")
	assert.True(t, app.session.Current().IsAuthenticated)
}
