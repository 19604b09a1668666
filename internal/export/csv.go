// Package export holds the terminal export adapters: a CSV flattening of the
// fetched article records and a single-page PDF snapshot of the rendered
// dashboard. Both are fire-and-forget; nothing flows back into the core.
package export

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/nomad-tales/nomadtales/internal/models"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data available to export")

// ArticlesCSV writes one row per article with the columns the dashboard
// export has always produced: Title, Description, Author, Category,
// Published (date only).
func ArticlesCSV(w io.Writer, articles []models.Article) error {
	if len(articles) == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Title", "Description", "Author", "Category", "Published"}); err != nil {
		return err
	}
	for _, a := range articles {
		author := "Unknown"
		if a.User != nil && a.User.Username != "" {
			author = a.User.Username
		}
		category := "Uncategorized"
		if a.Category != nil && a.Category.Name != "" {
			category = a.Category.Name
		}
		row := []string{a.Title, a.Description, author, category, a.CreatedAt.Format("2006-01-02")}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
