package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nomad-tales/nomadtales/internal/api"
	"github.com/nomad-tales/nomadtales/internal/dashboard"
	"github.com/nomad-tales/nomadtales/internal/models"
	"github.com/nomad-tales/nomadtales/internal/session"
)

// ------------ fakes ------------

type fakeBackend struct {
	loginUser    models.User
	loginErr     error
	loginCalls   int
	registerUser models.User
	registerErr  error

	articles   []models.Article
	pagination api.Pagination
	listErr    error
	article    models.Article
	getErr     error
	created    *api.ArticleInput
	updated    *api.ArticleInput
	deletedID  string

	categories []models.Category

	uploadURL string
}

func (f *fakeBackend) Register(ctx context.Context, email, username, password string) (models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeBackend) Login(ctx context.Context, identifier, password string) (models.User, error) {
	f.loginCalls++
	return f.loginUser, f.loginErr
}

func (f *fakeBackend) CurrentUser(ctx context.Context) (models.User, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeBackend) ListArticles(ctx context.Context, q api.ArticleQuery) ([]models.Article, api.Pagination, error) {
	return f.articles, f.pagination, f.listErr
}

func (f *fakeBackend) GetArticle(ctx context.Context, documentID string) (models.Article, error) {
	return f.article, f.getErr
}

func (f *fakeBackend) CreateArticle(ctx context.Context, in api.ArticleInput) (models.Article, error) {
	f.created = &in
	return models.Article{DocumentID: "new-doc", Title: in.Title}, nil
}

func (f *fakeBackend) UpdateArticle(ctx context.Context, documentID string, in api.ArticleInput) (models.Article, error) {
	f.updated = &in
	return models.Article{DocumentID: documentID, Title: in.Title}, nil
}

func (f *fakeBackend) DeleteArticle(ctx context.Context, documentID string) error {
	f.deletedID = documentID
	return nil
}

func (f *fakeBackend) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeBackend) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	return models.Category{ID: 1, DocumentID: "cat-doc", Name: name}, nil
}

func (f *fakeBackend) UpdateCategory(ctx context.Context, documentID, name string) (models.Category, error) {
	return models.Category{DocumentID: documentID, Name: name}, nil
}

func (f *fakeBackend) DeleteCategory(ctx context.Context, documentID string) error {
	return nil
}

func (f *fakeBackend) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	return f.uploadURL, nil
}

type fakeStats struct {
	stats    dashboard.Stats
	articles []models.Article
	err      error
	loads    int
}

func (f *fakeStats) Load(ctx context.Context) (dashboard.Stats, []models.Article, error) {
	f.loads++
	return f.stats, f.articles, f.err
}

type fakeCreds struct {
	token   string
	cleared bool
}

func (f *fakeCreds) Token() (string, bool)   { return f.token, f.token != "" }
func (f *fakeCreds) Save(token string) error { f.token = token; return nil }
func (f *fakeCreds) Clear() error            { f.token = ""; f.cleared = true; return nil }

// ------------ helpers ------------

func newTestApp(b backend) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		backend: b,
		session: session.NewStore(),
		creds:   &fakeCreds{},
		stats:   &fakeStats{},
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     out,
	}, out
}

// stubInput replaces the prompt seams for the duration of the test. texts
// feeds the single-line and multiline prompts in order; passwords feeds the
// password prompts in order.
func stubInput(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origText, origMulti, origPassword := getSimpleText, getMultiline, getPassword
	t.Cleanup(func() {
		getSimpleText, getMultiline, getPassword = origText, origMulti, origPassword
	})

	next := func() (string, error) {
		if len(texts) == 0 {
			return "", errors.New("unexpected prompt")
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getPassword = func(io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, errors.New("unexpected password prompt")
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
}
