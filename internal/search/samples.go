package search

import (
	"strings"

	"bookfind/pkg/domain"
)

// sampleItems is the fixed local set substituted when the service rejects
// a search for reasons unrelated to credentials.
var sampleItems = []domain.SearchResultItem{
	{
		BookID:     1,
		Title:      "The Great Gatsby",
		Author:     "F. Scott Fitzgerald",
		Snippet:    "A novel about the American Dream in the 1920s",
		FileFormat: "pdf",
	},
	{
		BookID:     2,
		Title:      "To Kill a Mockingbird",
		Author:     "Harper Lee",
		Snippet:    "A story about racial injustice in the American South",
		FileFormat: "epub",
	},
	{
		BookID:     3,
		Title:      "1984",
		Author:     "George Orwell",
		Snippet:    "A dystopian novel about totalitarianism",
		FileFormat: "pdf",
	},
}

// matchSamples filters the sample set by case-insensitive substring match
// over title, author, and snippet.
func matchSamples(query string) []domain.SearchResultItem {
	needle := strings.ToLower(query)
	var out []domain.SearchResultItem
	for _, item := range sampleItems {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Author), needle) ||
			strings.Contains(strings.ToLower(item.Snippet), needle) {
			out = append(out, item)
		}
	}
	return out
}
