package stubcms

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-tales/nomadtales/internal/api"
	"github.com/nomad-tales/nomadtales/internal/credential"
	"github.com/nomad-tales/nomadtales/internal/dashboard"
	"github.com/nomad-tales/nomadtales/internal/logging"
	"github.com/nomad-tales/nomadtales/internal/session"
)

// The tests below run the real client stack, credential file and all,
// against the stub over actual HTTP.

func newStack(t *testing.T) (*api.Client, *credential.FileStore) {
	t.Helper()
	s, err := NewServer(Config{JWTSecret: "test-secret"}, logging.NewDefault("error"))
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	creds := credential.NewFileStore(t.TempDir())
	return api.New(srv.URL, 0, creds, logging.NewDefault("error")), creds
}

func TestEndToEnd_RegisterPublishAggregate(t *testing.T) {
	ctx := context.Background()
	client, _ := newStack(t)

	user, err := client.Register(ctx, "ana@x.com", "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	travel, err := client.CreateCategory(ctx, "Travel")
	require.NoError(t, err)

	for _, title := range []string{"Alps", "Lisbon"} {
		_, err := client.CreateArticle(ctx, api.ArticleInput{Title: title, Description: "d", Category: &travel.ID})
		require.NoError(t, err)
	}
	_, err = client.CreateArticle(ctx, api.ArticleInput{Title: "Packing", Description: "d"})
	require.NoError(t, err)

	stats, articles, err := dashboard.NewService(client).Load(ctx)
	require.NoError(t, err)

	assert.Len(t, articles, 3)
	assert.Equal(t, 3, stats.TotalArticles)
	assert.Equal(t, 1, stats.TotalCategories)
	assert.Equal(t, map[string]int{"Travel": 2, "Uncategorized": 1}, stats.ArticleCountsByCategory)
	require.Len(t, stats.TopContributors, 1)
	assert.Equal(t, dashboard.Contributor{Username: "ana", ArticleCount: 3}, stats.TopContributors[0])
}

func TestEndToEnd_BootstrapRestoresSession(t *testing.T) {
	ctx := context.Background()
	client, creds := newStack(t)

	_, err := client.Register(ctx, "ana@x.com", "ana", "secret")
	require.NoError(t, err)

	// a fresh process start: only the credential file survives
	store := session.NewStore()
	session.Bootstrap(ctx, creds, client, store, logging.NewDefault("error"))

	st := store.Current()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "ana", st.User.Username)
}

func TestEndToEnd_BootstrapWipesRejectedCredential(t *testing.T) {
	ctx := context.Background()
	client, creds := newStack(t)

	require.NoError(t, creds.Save("not-a-real-token"))

	store := session.NewStore()
	session.Bootstrap(ctx, creds, client, store, logging.NewDefault("error"))

	assert.False(t, store.Current().IsAuthenticated)
	_, ok := creds.Token()
	assert.False(t, ok, "rejected credential is removed")
}

func TestEndToEnd_LoginAfterLogout(t *testing.T) {
	ctx := context.Background()
	client, creds := newStack(t)

	_, err := client.Register(ctx, "ana@x.com", "ana", "secret")
	require.NoError(t, err)
	require.NoError(t, creds.Clear())

	_, err = client.CurrentUser(ctx)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	user, err := client.Login(ctx, "ana@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	me, err := client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
}

func TestEndToEnd_BadLoginIsUnauthorized(t *testing.T) {
	ctx := context.Background()
	client, _ := newStack(t)

	_, err := client.Register(ctx, "ana@x.com", "ana", "secret")
	require.NoError(t, err)

	_, err = client.Login(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}
