package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/nomad-tales/nomadtales/internal/api"
	"github.com/nomad-tales/nomadtales/internal/config"
	"github.com/nomad-tales/nomadtales/internal/credential"
	"github.com/nomad-tales/nomadtales/internal/dashboard"
	"github.com/nomad-tales/nomadtales/internal/logging"
	"github.com/nomad-tales/nomadtales/internal/models"
	"github.com/nomad-tales/nomadtales/internal/session"
)

// backend is the remote API surface the screens use. *api.Client satisfies
// it; tests substitute a fake.
type backend interface {
	Register(ctx context.Context, email, username, password string) (models.User, error)
	Login(ctx context.Context, identifier, password string) (models.User, error)
	CurrentUser(ctx context.Context) (models.User, error)

	ListArticles(ctx context.Context, q api.ArticleQuery) ([]models.Article, api.Pagination, error)
	GetArticle(ctx context.Context, documentID string) (models.Article, error)
	CreateArticle(ctx context.Context, in api.ArticleInput) (models.Article, error)
	UpdateArticle(ctx context.Context, documentID string, in api.ArticleInput) (models.Article, error)
	DeleteArticle(ctx context.Context, documentID string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	UpdateCategory(ctx context.Context, documentID, name string) (models.Category, error)
	DeleteCategory(ctx context.Context, documentID string) error

	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// statsLoader is the dashboard service surface.
type statsLoader interface {
	Load(ctx context.Context) (dashboard.Stats, []models.Article, error)
}

// App wires the screens to the session store, the credential store and the
// backend client.
type App struct {
	config  *config.Config
	backend backend
	session *session.Store
	creds   credential.Source
	stats   statsLoader
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	// latest dashboard load, reused by the export screens
	lastStats    *dashboard.Stats
	lastArticles []models.Article
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	creds := credential.NewFileStore(cfg.HomeDir)
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, creds, log)

	return &App{
		config:  cfg,
		backend: client,
		session: session.NewStore(),
		creds:   creds,
		stats:   dashboard.NewService(client),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run bootstraps the session from the persisted credential, then hands
// control to the REPL. Bootstrap completes before the first command is
// read, so the guard never sees an unknown state.
func (a *App) Run(ctx context.Context) {
	session.Bootstrap(ctx, a.creds, a.backend, a.session, a.log)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().IsAuthenticated
}
