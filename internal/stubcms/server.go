package stubcms

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nomad-tales/nomadtales/internal/logging"
)

// Config holds the stub backend settings.
type Config struct {
	// JWTSecret signs the issued tokens. Required.
	JWTSecret string
	// SeedFile optionally points at a YAML file with initial content.
	SeedFile string
}

// Server is the stub backend. Handler returns its HTTP surface; tests mount
// it on httptest, the stubcms binary on a plain listener.
type Server struct {
	store  *store
	secret []byte
	log    logging.Logger
	router *mux.Router
}

func NewServer(cfg Config, log logging.Logger) (*Server, error) {
	s := &Server{
		store:  newStore(),
		secret: []byte(cfg.JWTSecret),
		log:    log.With("component", "stubcms"),
	}

	if cfg.SeedFile != "" {
		if err := s.seedFromFile(cfg.SeedFile); err != nil {
			return nil, err
		}
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/local/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/local", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/users/me", s.withAuth(s.handleMe)).Methods(http.MethodGet)

	r.HandleFunc("/api/articles", s.handleListArticles).Methods(http.MethodGet)
	r.HandleFunc("/api/articles", s.withAuth(s.handleCreateArticle)).Methods(http.MethodPost)
	r.HandleFunc("/api/articles/{documentId}", s.handleGetArticle).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/{documentId}", s.withAuth(s.handleUpdateArticle)).Methods(http.MethodPut)
	r.HandleFunc("/api/articles/{documentId}", s.withAuth(s.handleDeleteArticle)).Methods(http.MethodDelete)

	r.HandleFunc("/api/categories", s.handleListCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", s.withAuth(s.handleCreateCategory)).Methods(http.MethodPost)
	r.HandleFunc("/api/categories/{documentId}", s.withAuth(s.handleUpdateCategory)).Methods(http.MethodPut)
	r.HandleFunc("/api/categories/{documentId}", s.withAuth(s.handleDeleteCategory)).Methods(http.MethodDelete)

	r.HandleFunc("/api/upload", s.withAuth(s.handleUpload)).Methods(http.MethodPost)
	r.HandleFunc("/uploads/{key}", s.handleServeUpload).Methods(http.MethodGet)

	s.router = r
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// writeJSON writes payload with the given status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes the backend's error envelope.
func writeError(w http.ResponseWriter, status int, name, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"status":  status,
			"name":    name,
			"message": message,
		},
	})
}

// setJWTCookie mirrors the real backend's one-day, same-site cookie.
func setJWTCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
