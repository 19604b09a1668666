// Package dashboard derives the summary statistics shown on the dashboard
// screen from the raw article and category records.
package dashboard

import (
	"sort"

	"github.com/nomad-tales/nomadtales/internal/models"
)

// Uncategorized is the bucket for articles without a category.
const Uncategorized = "Uncategorized"

// UnknownAuthor is the bucket for articles whose author relation is missing.
const UnknownAuthor = "Unknown"

// maxContributors caps the contributor ranking at the five shown on screen.
const maxContributors = 5

// Contributor is one entry of the top-contributor ranking.
type Contributor struct {
	Username     string
	ArticleCount int
}

// Stats is the derived, ephemeral dashboard summary. It is recomputed on
// every dashboard load and never stored.
type Stats struct {
	TotalArticles           int
	TotalCategories         int
	ArticleCountsByCategory map[string]int
	TopContributors         []Contributor
}

// Compute aggregates articles and categories into Stats in a single pass.
//
// Category counts default to zero and missing categories fall into the
// Uncategorized bucket. The contributor ranking is sorted by count
// descending with a stable sort, so authors with equal counts keep the
// order in which they were first encountered, then truncated to five.
// An empty article list yields all-zero stats, not an error.
func Compute(articles []models.Article, categories []models.Category) Stats {
	byCategory := make(map[string]int)
	byAuthor := make(map[string]int)
	var authorOrder []string

	for _, a := range articles {
		category := Uncategorized
		if a.Category != nil && a.Category.Name != "" {
			category = a.Category.Name
		}
		byCategory[category]++

		author := UnknownAuthor
		if a.User != nil && a.User.Username != "" {
			author = a.User.Username
		}
		if _, seen := byAuthor[author]; !seen {
			authorOrder = append(authorOrder, author)
		}
		byAuthor[author]++
	}

	top := make([]Contributor, 0, len(authorOrder))
	for _, username := range authorOrder {
		top = append(top, Contributor{Username: username, ArticleCount: byAuthor[username]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ArticleCount > top[j].ArticleCount
	})
	if len(top) > maxContributors {
		top = top[:maxContributors]
	}

	return Stats{
		TotalArticles:           len(articles),
		TotalCategories:         len(categories),
		ArticleCountsByCategory: byCategory,
		TopContributors:         top,
	}
}
