package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nomad-tales/nomadtales/internal/api"
	"github.com/nomad-tales/nomadtales/internal/models"
)

const articlesPageSize = 5

// Articles lists one page of articles. Arguments take the form
// "page=N", "title=..." and "category=..."; repeating the command with the
// next page number is the terminal's "load more".
func (a *App) Articles(ctx context.Context, args []string) error {
	q := api.ArticleQuery{Page: 1, PageSize: articlesPageSize}
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "page="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "page="))
			if err != nil || n < 1 {
				log.Printf("invalid page number: %s", arg)
				return errors.New("invalid page number")
			}
			q.Page = n
		case strings.HasPrefix(arg, "title="):
			q.Title = strings.TrimPrefix(arg, "title=")
		case strings.HasPrefix(arg, "category="):
			q.Category = strings.TrimPrefix(arg, "category=")
		default:
			log.Printf("unknown filter: %s (use page=, title=, category=)", arg)
			return errors.New("unknown filter")
		}
	}

	articles, pg, err := a.backend.ListArticles(ctx, q)
	if err != nil {
		printAPIError("loading articles", err)
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(a.out, "No articles found.")
		return nil
	}

	for _, art := range articles {
		a.printArticleLine(art)
	}
	if pg.PageCount > 0 {
		fmt.Fprintf(a.out, "Page %d of %d (%d total)\n", pg.Page, pg.PageCount, pg.Total)
		if pg.Page < pg.PageCount {
			fmt.Fprintf(a.out, "More: articles page=%d\n", pg.Page+1)
		}
	}
	return nil
}

func (a *App) printArticleLine(art models.Article) {
	author := "Unknown"
	if art.User != nil {
		author = art.User.Username
	}
	line := fmt.Sprintf("%s  %q by %s on %s", art.DocumentID, art.Title, author, art.CreatedAt.Format("2006-01-02"))
	if art.Category != nil {
		line += "  [" + art.Category.Name + "]"
	}
	fmt.Fprintln(a.out, line)
}

// ShowArticle prints the full detail of one article.
func (a *App) ShowArticle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <documentId>")
		return errors.New("missing document id")
	}

	art, err := a.backend.GetArticle(ctx, args[0])
	if err != nil {
		printAPIError("loading article", err)
		return err
	}

	fmt.Fprintf(a.out, "%s\n", art.Title)
	fmt.Fprintf(a.out, "Published on %s\n", art.CreatedAt.Format("2006-01-02"))
	if art.User != nil {
		fmt.Fprintf(a.out, "By %s\n", art.User.Username)
	}
	if art.Category != nil {
		fmt.Fprintf(a.out, "Category: %s\n", art.Category.Name)
	}
	if art.CoverImageURL != "" {
		fmt.Fprintf(a.out, "Cover: %s\n", art.CoverImageURL)
	}
	fmt.Fprintf(a.out, "\n%s\n", art.Description)
	return nil
}

// AddArticle collects the article fields, optionally uploads a cover image,
// and creates the article. The signed-in user becomes the author on the
// backend side.
func (a *App) AddArticle(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if title == "" {
		log.Printf("Title is required")
		return errors.New("title required")
	}

	description, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	categoryID, err := a.pickCategory(ctx)
	if err != nil {
		return err
	}

	coverURL, err := a.maybeUploadCover(ctx)
	if err != nil {
		return err
	}

	in := api.ArticleInput{Title: title, Description: description, Category: categoryID, CoverImageURL: coverURL}
	art, err := a.backend.CreateArticle(ctx, in)
	if err != nil {
		printAPIError("creating article", err)
		return err
	}

	log.Printf("Article created: %s", art.DocumentID)
	return nil
}

// EditArticle fetches the article, prompts for replacement values (empty
// input keeps the current one) and saves.
func (a *App) EditArticle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <documentId>")
		return errors.New("missing document id")
	}

	art, err := a.backend.GetArticle(ctx, args[0])
	if err != nil {
		printAPIError("loading article", err)
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", art.Title), a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if title == "" {
		title = art.Title
	}

	description, err := getMultiline(a.reader, "Description (empty keeps current)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if description == "" {
		description = art.Description
	}

	categoryID, err := a.pickCategory(ctx)
	if err != nil {
		return err
	}
	if categoryID == nil && art.Category != nil {
		id := art.Category.ID
		categoryID = &id
	}

	coverURL, err := a.maybeUploadCover(ctx)
	if err != nil {
		return err
	}
	if coverURL == nil && art.CoverImageURL != "" {
		coverURL = &art.CoverImageURL
	}

	in := api.ArticleInput{Title: title, Description: description, Category: categoryID, CoverImageURL: coverURL}
	if _, err := a.backend.UpdateArticle(ctx, art.DocumentID, in); err != nil {
		printAPIError("updating article", err)
		return err
	}

	log.Printf("Article updated")
	return nil
}

// DeleteArticle asks for confirmation, then deletes.
func (a *App) DeleteArticle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <documentId>")
		return errors.New("missing document id")
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete article %s? (y/N)", args[0]), a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.backend.DeleteArticle(ctx, args[0]); err != nil {
		printAPIError("deleting article", err)
		return err
	}

	log.Printf("Article deleted")
	return nil
}

// pickCategory lists the categories and prompts for the numeric id of one.
// Empty input means no category.
func (a *App) pickCategory(ctx context.Context) (*int, error) {
	categories, err := a.backend.ListCategories(ctx)
	if err != nil {
		printAPIError("loading categories", err)
		return nil, err
	}
	if len(categories) == 0 {
		return nil, nil
	}

	for _, c := range categories {
		fmt.Fprintf(a.out, "  %d  %s\n", c.ID, c.Name)
	}
	answer, err := getSimpleText(a.reader, "Category id (empty for none)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}

	id, err := strconv.Atoi(answer)
	if err != nil {
		log.Printf("invalid category id: %s", answer)
		return nil, errors.New("invalid category id")
	}
	for _, c := range categories {
		if c.ID == id {
			return &id, nil
		}
	}
	log.Printf("no such category: %d", id)
	return nil, errors.New("no such category")
}

// maybeUploadCover prompts for an image path and uploads it when given.
func (a *App) maybeUploadCover(ctx context.Context) (*string, error) {
	path, err := getSimpleText(a.reader, "Cover image path (empty to skip)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("cannot open image: %v", err)
		return nil, err
	}
	defer f.Close()

	url, err := a.backend.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		printAPIError("uploading image", err)
		return nil, err
	}
	return &url, nil
}
