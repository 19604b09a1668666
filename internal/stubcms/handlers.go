package stubcms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nomad-tales/nomadtales/internal/models"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

type ctxKey int

const userIDKey ctxKey = iota

// withAuth requires a valid bearer token and puts the caller's user id on
// the request context.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "UnauthorizedError", "Missing or invalid credentials")
			return
		}
		userID, err := userIDFromToken(token, s.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UnauthorizedError", "Missing or invalid credentials")
			return
		}
		if _, found := s.store.findUserByID(userID); !found {
			writeError(w, http.StatusUnauthorized, "UnauthorizedError", "Missing or invalid credentials")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

func callerID(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}

type authBody struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body authBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "Invalid request body")
		return
	}
	if body.Email == "" || body.Username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "ValidationError", "email, username and password are required")
		return
	}

	hash, err := hashPassword(body.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalServerError", "could not hash password")
		return
	}

	u, err := s.store.addUser(body.Email, body.Username, hash)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	s.issueSession(w, r, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body authBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "Invalid request body")
		return
	}

	u, found := s.store.findUserByIdentifier(body.Identifier)
	if !found || !checkPassword(u.passwordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "UnauthorizedError", errBadLogin.Error())
		return
	}

	s.issueSession(w, r, u)
}

// issueSession signs a token for u and writes the auth response, setting
// the jwt cookie alongside for browser clients.
func (s *Server) issueSession(w http.ResponseWriter, r *http.Request, u *user) {
	token, err := generateToken(u.ID, s.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalServerError", "could not sign token")
		return
	}
	setJWTCookie(w, token)
	s.log.Info(r.Context(), "session issued", "username", u.Username)
	writeJSON(w, http.StatusOK, map[string]any{"jwt": token, "user": u.User})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, found := s.store.findUserByID(callerID(r))
	if !found {
		writeError(w, http.StatusUnauthorized, "UnauthorizedError", "Missing or invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, u.User)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := intParam(q.Get("pagination[page]"), 1)
	pageSize := intParam(q.Get("pagination[pageSize]"), defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	populateAll := q.Get("populate") == "*"
	populateUser := populateAll || q.Get("populate[user]") == "true"
	populateCategory := populateAll || q.Get("populate[category]") == "true"

	all := s.store.listArticles(
		q.Get("filters[title][$eqi]"),
		q.Get("filters[category][name][$eqi]"),
		populateUser, populateCategory,
	)

	total := len(all)
	pageCount := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	data := all[start:end]
	if data == nil {
		data = []models.Article{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"meta": map[string]any{
			"pagination": map[string]int{
				"page":      page,
				"pageSize":  pageSize,
				"pageCount": pageCount,
				"total":     total,
			},
		},
	})
}

func intParam(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

type articleBody struct {
	Data struct {
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		CoverImageURL *string `json:"cover_image_url"`
		Category      *int    `json:"category"`
	} `json:"data"`
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var body articleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "Invalid request body")
		return
	}
	if body.Data.Title == "" {
		writeError(w, http.StatusBadRequest, "ValidationError", "title is required")
		return
	}

	coverURL := ""
	if body.Data.CoverImageURL != nil {
		coverURL = *body.Data.CoverImageURL
	}
	categoryID := 0
	if body.Data.Category != nil {
		categoryID = *body.Data.Category
	}

	a := s.store.addArticle(body.Data.Title, body.Data.Description, coverURL, categoryID, callerID(r))
	writeJSON(w, http.StatusOK, map[string]any{"data": s.store.projectOne(a, true, true)})
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	a, found := s.store.articleByDocumentID(mux.Vars(r)["documentId"])
	if !found {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}

	populate := r.URL.Query().Get("populate") == "*"
	writeJSON(w, http.StatusOK, map[string]any{"data": s.store.projectOne(a, populate, populate)})
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	var body articleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "Invalid request body")
		return
	}
	if body.Data.Title == "" {
		writeError(w, http.StatusBadRequest, "ValidationError", "title is required")
		return
	}

	coverURL := ""
	if body.Data.CoverImageURL != nil {
		coverURL = *body.Data.CoverImageURL
	}
	categoryID := 0
	if body.Data.Category != nil {
		categoryID = *body.Data.Category
	}

	a, err := s.store.updateArticle(mux.Vars(r)["documentId"], body.Data.Title, body.Data.Description, coverURL, categoryID)
	if err != nil {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": s.store.projectOne(a, true, true)})
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteArticle(mux.Vars(r)["documentId"]); err != nil {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": nil})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.store.listCategories()})
}

type categoryBody struct {
	Data struct {
		Name string `json:"name"`
	} `json:"data"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Data.Name == "" {
		writeError(w, http.StatusBadRequest, "ValidationError", "name is required")
		return
	}
	c := s.store.addCategory(body.Data.Name)
	writeJSON(w, http.StatusOK, map[string]any{"data": c})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Data.Name == "" {
		writeError(w, http.StatusBadRequest, "ValidationError", "name is required")
		return
	}
	c, err := s.store.updateCategory(mux.Vars(r)["documentId"], body.Data.Name)
	if err != nil {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": c})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteCategory(mux.Vars(r)["documentId"]); err != nil {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": nil})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "Invalid multipart body")
		return
	}
	file, _, err := r.FormFile("files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "files field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalServerError", "could not read upload")
		return
	}

	key := s.store.saveUpload(data)
	writeJSON(w, http.StatusOK, []map[string]string{{"url": "/uploads/" + key}})
}

func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	data, found := s.store.upload(mux.Vars(r)["key"])
	if !found {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
