package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bookfind/internal/search"
	"bookfind/pkg/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the library by title, author, or content",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		result, err := c.searcher.Search(cmd.Context(), query)
		if err != nil {
			if errors.Is(err, search.ErrEmptyQuery) {
				return errors.New("please enter a search term")
			}
			if !result.FromFallback {
				return errors.New(explainError(err))
			}
			fmt.Printf("Search failed (%v); showing local sample matches:\n\n", err)
		}
		printResults(result.Items)
		return nil
	},
}

func printResults(items []domain.SearchResultItem) {
	if len(items) == 0 {
		fmt.Println("No results found.")
		return
	}
	for i, item := range items {
		fmt.Printf("%2d. %s — %s", i+1, item.Title, item.Author)
		if item.FileFormat != "" {
			fmt.Printf(" [%s]", strings.ToUpper(item.FileFormat))
		}
		if item.Relevance > 0 {
			fmt.Printf(" (%.0f%% match)", item.Relevance*100)
		}
		fmt.Printf("\n    %s\n    book id: %d\n", item.Snippet, item.BookID)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
