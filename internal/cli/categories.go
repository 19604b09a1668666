package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Categories lists all categories.
func (a *App) Categories(ctx context.Context) error {
	categories, err := a.backend.ListCategories(ctx)
	if err != nil {
		printAPIError("loading categories", err)
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(a.out, "No categories yet.")
		return nil
	}
	for _, c := range categories {
		fmt.Fprintf(a.out, "%s  %s\n", c.DocumentID, c.Name)
	}
	return nil
}

// AddCategory prompts for a name and creates the category.
func (a *App) AddCategory(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Category name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if name == "" {
		log.Printf("Name is required")
		return errors.New("name required")
	}

	c, err := a.backend.CreateCategory(ctx, name)
	if err != nil {
		printAPIError("creating category", err)
		return err
	}

	log.Printf("Category created: %s", c.DocumentID)
	return nil
}

// EditCategory renames a category.
func (a *App) EditCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: editcat <documentId>")
		return errors.New("missing document id")
	}

	name, err := getSimpleText(a.reader, "New name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if name == "" {
		log.Printf("Name is required")
		return errors.New("name required")
	}

	if _, err := a.backend.UpdateCategory(ctx, args[0], name); err != nil {
		printAPIError("updating category", err)
		return err
	}

	log.Printf("Category updated")
	return nil
}

// DeleteCategory asks for confirmation, then deletes. Articles that used
// the category become uncategorized.
func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delcat <documentId>")
		return errors.New("missing document id")
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete category %s? (y/N)", args[0]), a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.backend.DeleteCategory(ctx, args[0]); err != nil {
		printAPIError("deleting category", err)
		return err
	}

	log.Printf("Category deleted")
	return nil
}
