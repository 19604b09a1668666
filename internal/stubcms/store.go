// Package stubcms is an in-memory fake of the Nomad Tales backend. It
// implements the REST contract the client consumes and nothing more: no
// persistence, no TLS. It exists for local development and for integration
// tests that want the whole client stack exercised against real HTTP.
package stubcms

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nomad-tales/nomadtales/internal/models"
)

var (
	errNotFound      = errors.New("not found")
	errDuplicateUser = errors.New("email or username are already taken")
	errBadLogin      = errors.New("invalid identifier or password")
)

type user struct {
	models.User
	passwordHash []byte
}

type article struct {
	models.Article
	authorID   int
	categoryID int // 0 means uncategorized
}

// store holds all backend state behind one mutex. The stub serves tests and
// a single developer, so a coarse lock is plenty.
type store struct {
	mu sync.Mutex

	users      []*user
	articles   []*article
	categories []*models.Category
	uploads    map[string][]byte

	nextID int
}

func newStore() *store {
	return &store{uploads: make(map[string][]byte), nextID: 1}
}

func (s *store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *store) addUser(email, username string, passwordHash []byte) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) || strings.EqualFold(u.Username, username) {
			return nil, errDuplicateUser
		}
	}
	u := &user{
		User: models.User{
			ID:        s.id(),
			Username:  username,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: passwordHash,
	}
	s.users = append(s.users, u)
	return u, nil
}

// findUserByIdentifier matches e-mail or username, the way the login
// endpoint accepts either.
func (s *store) findUserByIdentifier(identifier string) (*user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, identifier) || strings.EqualFold(u.Username, identifier) {
			return u, true
		}
	}
	return nil, false
}

func (s *store) findUserByID(id int) (*user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

func (s *store) addCategory(name string) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Category{ID: s.id(), DocumentID: uuid.NewString(), Name: name}
	s.categories = append(s.categories, c)
	return c
}

func (s *store) listCategories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out
}

func (s *store) categoryByID(id int) (*models.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (s *store) updateCategory(documentID, name string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.DocumentID == documentID {
			c.Name = name
			out := *c
			return &out, nil
		}
	}
	return nil, errNotFound
}

func (s *store) deleteCategory(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.DocumentID == documentID {
			// articles referencing it become uncategorized
			for _, a := range s.articles {
				if a.categoryID == c.ID {
					a.categoryID = 0
				}
			}
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *store) addArticle(title, description, coverURL string, categoryID, authorID int) *article {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &article{
		Article: models.Article{
			ID:            s.id(),
			DocumentID:    uuid.NewString(),
			Title:         title,
			Description:   description,
			CoverImageURL: coverURL,
			CreatedAt:     time.Now().UTC(),
		},
		authorID:   authorID,
		categoryID: categoryID,
	}
	s.articles = append(s.articles, a)
	return a
}

func (s *store) articleByDocumentID(documentID string) (*article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.articles {
		if a.DocumentID == documentID {
			return a, true
		}
	}
	return nil, false
}

func (s *store) updateArticle(documentID, title, description, coverURL string, categoryID int) (*article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.articles {
		if a.DocumentID == documentID {
			a.Title = title
			a.Description = description
			a.CoverImageURL = coverURL
			a.categoryID = categoryID
			return a, nil
		}
	}
	return nil, errNotFound
}

func (s *store) deleteArticle(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.articles {
		if a.DocumentID == documentID {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

// listArticles applies the equality filters and returns projected records
// in insertion order, with relations resolved when populate asks for them.
func (s *store) listArticles(titleFilter, categoryFilter string, populateUser, populateCategory bool) []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Article
	for _, a := range s.articles {
		if titleFilter != "" && !strings.EqualFold(a.Title, titleFilter) {
			continue
		}
		category, hasCategory := s.categoryByID(a.categoryID)
		if categoryFilter != "" && (!hasCategory || !strings.EqualFold(category.Name, categoryFilter)) {
			continue
		}
		out = append(out, s.project(a, populateUser, populateCategory))
	}
	return out
}

// project builds the API view of an article. Callers hold the lock.
func (s *store) project(a *article, populateUser, populateCategory bool) models.Article {
	view := a.Article
	if populateUser {
		for _, u := range s.users {
			if u.ID == a.authorID {
				author := u.User
				view.User = &author
				break
			}
		}
	}
	if populateCategory {
		if c, ok := s.categoryByID(a.categoryID); ok {
			category := *c
			view.Category = &category
		}
	}
	return view
}

func (s *store) projectOne(a *article, populateUser, populateCategory bool) models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project(a, populateUser, populateCategory)
}

func (s *store) saveUpload(data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := uuid.NewString()
	s.uploads[key] = data
	return key
}

func (s *store) upload(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.uploads[key]
	return data, ok
}
