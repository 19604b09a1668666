package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-tales/nomadtales/internal/models"
)

func TestCategories_List(t *testing.T) {
	backend := &fakeBackend{categories: []models.Category{
		{DocumentID: "c1", Name: "Travel"},
		{DocumentID: "c2", Name: "Food"},
	}}
	app, out := newTestApp(backend)

	require.NoError(t, app.Categories(context.Background()))
	assert.Contains(t, out.String(), "c1  Travel")
	assert.Contains(t, out.String(), "c2  Food")
}

func TestCategories_Empty(t *testing.T) {
	app, out := newTestApp(&fakeBackend{})

	require.NoError(t, app.Categories(context.Background()))
	assert.Contains(t, out.String(), "No categories yet.")
}

func TestAddCategory_NameRequired(t *testing.T) {
	app, _ := newTestApp(&fakeBackend{})
	stubInput(t, []string{""}, nil)

	assert.Error(t, app.AddCategory(context.Background()))
}

func TestDeleteCategory_Cancelled(t *testing.T) {
	app, out := newTestApp(&fakeBackend{})
	stubInput(t, []string{"no"}, nil)

	require.NoError(t, app.DeleteCategory(context.Background(), []string{"c1"}))
	assert.Contains(t, out.String(), "Cancelled.")
}
