package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage past searches",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		entries, err := c.history.ListEntries(cmd.Context())
		if err != nil {
			return errors.New(explainError(err))
		}
		if len(entries) == 0 {
			fmt.Println("No search history found. Start searching to build your history.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%4d  %-30q  %s  (%d results)\n",
				e.ID, e.Query, e.Timestamp.Format("2006-01-02 15:04"), e.ResultCount)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the stored results of one past search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid history id %q", args[0])
		}
		c, err := newCore()
		if err != nil {
			return err
		}
		detail, err := c.history.Expand(cmd.Context(), id)
		if err != nil {
			return errors.New(explainError(err))
		}
		fmt.Printf("Results for %q:\n", detail.Query)
		printResults(detail.Results)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one past search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid history id %q", args[0])
		}
		c, err := newCore()
		if err != nil {
			return err
		}
		if err := c.history.Delete(cmd.Context(), id); err != nil {
			return errors.New(explainError(err))
		}
		fmt.Printf("Deleted search %d\n", id)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
