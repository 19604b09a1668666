package api

import (
	"context"
	"net/http"

	"github.com/nomad-tales/nomadtales/internal/models"
)

type categoryData struct {
	Data models.Category `json:"data"`
}

type categoryListData struct {
	Data []models.Category `json:"data"`
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out categoryListData
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateCategory creates a category with the given display name.
func (c *Client) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	body := struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}{}
	body.Data.Name = name

	var out categoryData
	if err := c.do(ctx, http.MethodPost, "/api/categories", nil, body, &out); err != nil {
		return models.Category{}, err
	}
	return out.Data, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, documentID, name string) (models.Category, error) {
	body := struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}{}
	body.Data.Name = name

	var out categoryData
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+documentID, nil, body, &out); err != nil {
		return models.Category{}, err
	}
	return out.Data, nil
}

// DeleteCategory removes a category. Articles that referenced it become
// uncategorized; the backend owns that cascade.
func (c *Client) DeleteCategory(ctx context.Context, documentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+documentID, nil, nil, nil)
}
