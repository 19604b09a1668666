package stubcms

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile describes the YAML layout of an initial content file. Article
// authors and categories are referenced by name so the file stays readable.
type seedFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Categories []string `yaml:"categories"`
	Articles   []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Author      string `yaml:"author"`
		Category    string `yaml:"category"`
	} `yaml:"articles"`
}

func (s *Server) seedFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, u := range seed.Users {
		hash, err := hashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		if _, err := s.store.addUser(u.Email, u.Username, hash); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}

	categoryIDs := make(map[string]int, len(seed.Categories))
	for _, name := range seed.Categories {
		c := s.store.addCategory(name)
		categoryIDs[name] = c.ID
	}

	for _, a := range seed.Articles {
		authorID := 0
		if u, found := s.store.findUserByIdentifier(a.Author); found {
			authorID = u.ID
		}
		categoryID := 0
		if a.Category != "" {
			id, known := categoryIDs[a.Category]
			if !known {
				return fmt.Errorf("seed article %q: unknown category %q", a.Title, a.Category)
			}
			categoryID = id
		}
		s.store.addArticle(a.Title, a.Description, "", categoryID, authorID)
	}

	return nil
}
