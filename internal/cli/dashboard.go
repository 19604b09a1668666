package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nomad-tales/nomadtales/internal/dashboard"
)

// Dashboard loads the aggregate statistics and renders them as text. The
// loaded records are kept for the export commands, which flatten the same
// view.
func (a *App) Dashboard(ctx context.Context) error {
	stats, articles, err := a.stats.Load(ctx)
	if err != nil {
		printAPIError("loading dashboard", err)
		return err
	}
	a.lastStats = &stats
	a.lastArticles = articles

	for _, line := range renderStats(stats) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// renderStats produces the text lines of the dashboard; the same lines go
// to the terminal and into the PDF snapshot. Map iteration order is not
// stable, so the category rows are sorted by name.
func renderStats(st dashboard.Stats) []string {
	lines := []string{
		fmt.Sprintf("Articles: %d    Categories: %d", st.TotalArticles, st.TotalCategories),
		"",
		"Articles by category:",
	}

	names := make([]string, 0, len(st.ArticleCountsByCategory))
	for name := range st.ArticleCountsByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		count := st.ArticleCountsByCategory[name]
		lines = append(lines, fmt.Sprintf("  %-20s %3d  %s", name, count, strings.Repeat("#", count)))
	}
	if len(names) == 0 {
		lines = append(lines, "  (none)")
	}

	lines = append(lines, "", "Top contributors:")
	for i, c := range st.TopContributors {
		lines = append(lines, fmt.Sprintf("  %d. %-20s %3d", i+1, c.Username, c.ArticleCount))
	}
	if len(st.TopContributors) == 0 {
		lines = append(lines, "  (none)")
	}

	return lines
}
