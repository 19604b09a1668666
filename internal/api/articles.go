package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nomad-tales/nomadtales/internal/models"
)

// ArticleQuery selects a page of articles. Title and Category are
// case-insensitive equality filters; zero values mean "no filter" and the
// backend's pagination defaults.
type ArticleQuery struct {
	Page     int
	PageSize int
	Title    string
	Category string
}

// Pagination is the backend's paging metadata for a list response.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// ArticleInput carries the writable fields of an article. Category is the
// numeric id of the category to link, nil to leave the article uncategorized.
type ArticleInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CoverImageURL *string `json:"cover_image_url"`
	Category      *int    `json:"category"`
}

type articleData struct {
	Data models.Article `json:"data"`
}

type articleListData struct {
	Data []models.Article `json:"data"`
	Meta struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
}

// ListArticles fetches one page of articles with author and category
// populated.
func (c *Client) ListArticles(ctx context.Context, q ArticleQuery) ([]models.Article, Pagination, error) {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("pagination[page]", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
	}
	v.Set("populate[user]", "true")
	v.Set("populate[category]", "true")
	if q.Title != "" {
		v.Set("filters[title][$eqi]", q.Title)
	}
	if q.Category != "" {
		v.Set("filters[category][name][$eqi]", q.Category)
	}

	var out articleListData
	if err := c.do(ctx, http.MethodGet, "/api/articles", v, nil, &out); err != nil {
		return nil, Pagination{}, err
	}
	return out.Data, out.Meta.Pagination, nil
}

// GetArticle fetches a single article by its document id, with all
// relations populated.
func (c *Client) GetArticle(ctx context.Context, documentID string) (models.Article, error) {
	v := url.Values{}
	v.Set("populate", "*")

	var out articleData
	if err := c.do(ctx, http.MethodGet, "/api/articles/"+documentID, v, nil, &out); err != nil {
		return models.Article{}, err
	}
	return out.Data, nil
}

// CreateArticle creates an article authored by the current user.
func (c *Client) CreateArticle(ctx context.Context, in ArticleInput) (models.Article, error) {
	body := struct {
		Data ArticleInput `json:"data"`
	}{Data: in}

	var out articleData
	if err := c.do(ctx, http.MethodPost, "/api/articles", nil, body, &out); err != nil {
		return models.Article{}, err
	}
	return out.Data, nil
}

// UpdateArticle replaces the writable fields of an article.
func (c *Client) UpdateArticle(ctx context.Context, documentID string, in ArticleInput) (models.Article, error) {
	body := struct {
		Data ArticleInput `json:"data"`
	}{Data: in}

	var out articleData
	if err := c.do(ctx, http.MethodPut, "/api/articles/"+documentID, nil, body, &out); err != nil {
		return models.Article{}, err
	}
	return out.Data, nil
}

// DeleteArticle removes an article.
func (c *Client) DeleteArticle(ctx context.Context, documentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/articles/"+documentID, nil, nil, nil)
}
