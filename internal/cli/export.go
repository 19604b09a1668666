package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/nomad-tales/nomadtales/internal/export"
)

// ensureLoaded makes sure the export commands have a dashboard view to
// flatten, loading one if the user has not opened the dashboard yet.
func (a *App) ensureLoaded(ctx context.Context) error {
	if a.lastStats != nil {
		return nil
	}
	stats, articles, err := a.stats.Load(ctx)
	if err != nil {
		printAPIError("loading dashboard", err)
		return err
	}
	a.lastStats = &stats
	a.lastArticles = articles
	return nil
}

// ExportCSV flattens the article records into articles.csv in the working
// directory.
func (a *App) ExportCSV(ctx context.Context) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}

	f, err := os.Create("articles.csv")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer f.Close()

	if err := export.ArticlesCSV(f, a.lastArticles); err != nil {
		if errors.Is(err, export.ErrNoData) {
			log.Printf("No data available to export")
		} else {
			log.Printf("CSV export failed: %v", err)
		}
		return err
	}

	log.Printf("Saved articles.csv")
	return nil
}

// ExportPDF writes a snapshot of the rendered dashboard to dashboard.pdf in
// the working directory.
func (a *App) ExportPDF(ctx context.Context) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}

	f, err := os.Create("dashboard.pdf")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer f.Close()

	if err := export.PageSnapshot(f, "Nomad Tales Dashboard", renderStats(*a.lastStats)); err != nil {
		log.Printf("PDF export failed: %v", err)
		return err
	}

	log.Printf("Saved dashboard.pdf")
	return nil
}
