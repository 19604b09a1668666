package stubcms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-tales/nomadtales/internal/logging"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := NewServer(Config{JWTSecret: "test-secret"}, logging.NewDefault("error"))
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	return doJSON(t, http.MethodPost, url, token, body)
}

func doJSON(t *testing.T, method, url, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerUser(t *testing.T, base, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":"%s@x.com","username":"%s","password":"secret"}`, username, username)
	resp, out := postJSON(t, base+"/api/auth/local/register", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := out["jwt"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "ana")

	resp, out := postJSON(t, srv.URL+"/api/auth/local", "", `{"identifier":"ana","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, out["jwt"])
	user := out["user"].(map[string]any)
	assert.Equal(t, "ana", user["username"])

	var jwtCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == "jwt" && c.HttpOnly {
			jwtCookie = true
		}
	}
	assert.True(t, jwtCookie, "login sets the jwt cookie")
}

func TestRegister_DuplicateIsRejected(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "ana")

	resp, out := postJSON(t, srv.URL+"/api/auth/local/register", "", `{"email":"other@x.com","username":"ana","password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := out["error"].(map[string]any)
	assert.Contains(t, errObj["message"], "already taken")
}

func TestLogin_BadPassword(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv.URL, "ana")

	resp, _ := postJSON(t, srv.URL+"/api/auth/local", "", `{"identifier":"ana","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "ana")

	resp, out := doJSON(t, http.MethodGet, srv.URL+"/api/users/me", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana", out["username"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/users/me", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestArticles_CRUDAndFilters(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "ana")

	resp, catOut := postJSON(t, srv.URL+"/api/categories", token, `{"data":{"name":"Travel"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categoryID := int(catOut["data"].(map[string]any)["id"].(float64))

	body := fmt.Sprintf(`{"data":{"title":"Alps","description":"high up","category":%d}}`, categoryID)
	resp, created := postJSON(t, srv.URL+"/api/articles", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := created["data"].(map[string]any)
	documentID := data["documentId"].(string)
	require.NotEmpty(t, documentID)
	assert.Equal(t, "ana", data["user"].(map[string]any)["username"])

	// unauthenticated writes are rejected
	resp, _ = postJSON(t, srv.URL+"/api/articles", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// case-insensitive title filter
	resp, list := doJSON(t, http.MethodGet, srv.URL+"/api/articles?filters%5Btitle%5D%5B%24eqi%5D=alps", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list["data"].([]any), 1)

	// category name filter
	resp, list = doJSON(t, http.MethodGet, srv.URL+"/api/articles?filters%5Bcategory%5D%5Bname%5D%5B%24eqi%5D=travel", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list["data"].([]any), 1)

	resp, list = doJSON(t, http.MethodGet, srv.URL+"/api/articles?filters%5Btitle%5D%5B%24eqi%5D=nope", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list["data"].([]any))

	// update
	resp, updated := doJSON(t, http.MethodPut, srv.URL+"/api/articles/"+documentID, token, `{"data":{"title":"Alps revisited","description":"higher"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alps revisited", updated["data"].(map[string]any)["title"])

	// get with populate
	resp, got := doJSON(t, http.MethodGet, srv.URL+"/api/articles/"+documentID+"?populate=*", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana", got["data"].(map[string]any)["user"].(map[string]any)["username"])

	// delete
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/articles/"+documentID, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/articles/"+documentID, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestArticles_Pagination(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "ana")

	for i := 0; i < 7; i++ {
		body := fmt.Sprintf(`{"data":{"title":"article %d","description":"d"}}`, i)
		resp, _ := postJSON(t, srv.URL+"/api/articles", token, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, out := doJSON(t, http.MethodGet, srv.URL+"/api/articles?pagination%5Bpage%5D=2&pagination%5BpageSize%5D=5", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, out["data"].([]any), 2)
	pg := out["meta"].(map[string]any)["pagination"].(map[string]any)
	assert.EqualValues(t, 2, pg["page"])
	assert.EqualValues(t, 5, pg["pageSize"])
	assert.EqualValues(t, 2, pg["pageCount"])
	assert.EqualValues(t, 7, pg["total"])
}

func TestCategories_DeleteLeavesArticlesUncategorized(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "ana")

	_, catOut := postJSON(t, srv.URL+"/api/categories", token, `{"data":{"name":"Travel"}}`)
	catData := catOut["data"].(map[string]any)
	categoryID := int(catData["id"].(float64))
	catDocumentID := catData["documentId"].(string)

	body := fmt.Sprintf(`{"data":{"title":"Alps","description":"d","category":%d}}`, categoryID)
	_, created := postJSON(t, srv.URL+"/api/articles", token, body)
	documentID := created["data"].(map[string]any)["documentId"].(string)

	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/api/categories/"+catDocumentID, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, got := doJSON(t, http.MethodGet, srv.URL+"/api/articles/"+documentID+"?populate=*", "", "")
	assert.Nil(t, got["data"].(map[string]any)["category"])
}

func TestUploadRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL, "ana")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "cover.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpegbytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var files []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&files))
	require.Len(t, files, 1)

	served, err := http.Get(srv.URL + files[0]["url"])
	require.NoError(t, err)
	defer served.Body.Close()
	require.Equal(t, http.StatusOK, served.StatusCode)

	data := make([]byte, 16)
	n, _ := served.Body.Read(data)
	assert.Equal(t, "jpegbytes", string(data[:n]))
}
